package cmd

import (
	"fmt"
	"os"

	"github.com/hephbuild/starconsole/sink"
	"github.com/hephbuild/starconsole/sink/sinkcbor"
	"github.com/hephbuild/starconsole/sink/sinkjson"
	"github.com/hephbuild/starconsole/sink/sinktext"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var format string
	var runID string

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the records of a " + sinkcbor.Ext + " file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var write func(sink.Record) error
			switch format {
			case sinktext.Name:
				p := sinktext.New(cmd.OutOrStdout(), sinktext.Options{Plain: plain})
				write = func(rec sink.Record) error {
					return p.Print(rec.Level, rec.Printable())
				}
			case sinkjson.Name:
				write = sinkjson.New(cmd.OutOrStdout(), sinkjson.Options{}).Write
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			return sinkcbor.Read(f, func(rec sink.Record) error {
				if runID != "" && rec.RunID != runID {
					return nil
				}

				return write(rec)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", sinktext.Name, "output format, text or json")
	cmd.Flags().StringVar(&runID, "run", "", "only print records of this run")

	return cmd
}
