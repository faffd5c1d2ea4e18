package hconsole

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
)

// AssertionFailed is the generic message used by a failing assert().
const AssertionFailed = "Assertion failed"

type Config struct {
	// Client receives the records, nil disables the console.
	Client Client

	// Converter defaults to DefaultConverter.
	Converter Converter
}

// Console implements the console API for a single execution context. It is
// not safe for concurrent use.
type Console struct {
	client   Client
	conv     Converter
	counters Counters
}

func New(cfg Config) *Console {
	conv := cfg.Converter
	if conv == nil {
		conv = DefaultConverter
	}

	return &Console{
		client: cfg.Client,
		conv:   conv,
	}
}

// Client returns the attached client, or nil.
func (c *Console) Client() Client {
	return c.client
}

// Counters exposes the count table. The returned value must not be modified
// while the console is in use.
func (c *Console) Counters() *Counters {
	return &c.counters
}

func (c *Console) logger(level Level, args starlark.Tuple) (starlark.Value, error) {
	if c.client == nil {
		return starlark.None, nil
	}

	return orNone(c.client.Logger(level, args))
}

func (c *Console) Debug(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	return c.logger(DebugLevel, args)
}

func (c *Console) Error(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	return c.logger(ErrorLevel, args)
}

func (c *Console) Info(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	return c.logger(InfoLevel, args)
}

func (c *Console) Log(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	return c.logger(LogLevel, args)
}

func (c *Console) Warn(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	return c.logger(WarnLevel, args)
}

func (c *Console) Clear(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	// Group stacks are not supported, there is nothing else to empty.

	if c.client != nil {
		c.client.Clear()
	}

	return starlark.None, nil
}

func (c *Console) label(args starlark.Tuple) (string, error) {
	if len(args) == 0 {
		return DefaultLabel, nil
	}

	return c.conv.ToString(args[0])
}

func (c *Console) Count(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	label, err := c.label(args)
	if err != nil {
		return nil, err
	}

	n := c.counters.Increment(label)

	if c.client != nil {
		concat := fmt.Sprintf("%s: %d", label, n)
		_, err := c.client.Logger(CountLevel, []starlark.Value{starlark.String(concat)})
		if err != nil {
			return nil, err
		}
	}

	return starlark.None, nil
}

func (c *Console) CountReset(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	label, err := c.label(args)
	if err != nil {
		return nil, err
	}

	if c.counters.Reset(label) {
		return starlark.None, nil
	}

	if c.client != nil {
		message := fmt.Sprintf("\"%s\" doesn't have a count", label)
		_, err := c.client.Logger(CountResetLevel, []starlark.Value{starlark.String(message)})
		if err != nil {
			return nil, err
		}
	}

	return starlark.None, nil
}

func (c *Console) Assert(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	var condition starlark.Value = starlark.None
	if len(args) > 0 {
		condition = args[0]
	}
	if c.conv.ToBool(condition) {
		return starlark.None, nil
	}

	data, err := AssertData(c.conv, args)
	if err != nil {
		return nil, err
	}

	if c.client != nil {
		_, err := c.client.Logger(AssertLevel, data)
		if err != nil {
			return nil, err
		}
	}

	return starlark.None, nil
}

// AssertData builds the record of a failed assertion from the full
// argument list, condition included.
func AssertData(conv Converter, args starlark.Tuple) ([]starlark.Value, error) {
	message := starlark.String(AssertionFailed)

	var data []starlark.Value
	if len(args) > 1 {
		data = make([]starlark.Value, 0, len(args))
		data = append(data, args[1:]...)
	}

	if len(data) == 0 {
		return []starlark.Value{message}, nil
	}

	first := data[0]
	if _, ok := first.(starlark.String); !ok {
		return append([]starlark.Value{message}, data...), nil
	}

	s, err := conv.ToString(first)
	if err != nil {
		return nil, err
	}
	data[0] = starlark.String(string(message) + ": " + s)

	return data, nil
}

func (c *Console) Trace(thread *starlark.Thread, args starlark.Tuple) (starlark.Value, error) {
	if c.client == nil {
		return starlark.None, nil
	}

	trace := &Trace{
		Stack: CaptureStack(thread, 1),
	}

	if len(args) > 0 {
		formatted, err := c.client.Formatter(args)
		if err != nil {
			return nil, err
		}

		parts := make([]string, 0, len(formatted))
		for _, item := range formatted {
			s, err := c.conv.ToString(item)
			if err != nil {
				return nil, err
			}
			parts = append(parts, s)
		}
		trace.Label = strings.Join(parts, " ")
		trace.HasLabel = true
	}

	return orNone(c.client.Printer(TraceLevel, trace))
}

func orNone(v starlark.Value, err error) (starlark.Value, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return starlark.None, nil
	}

	return v, nil
}

// CaptureStack returns the names of the active frames of thread, most
// recent first, leaving out the skip innermost frames.
func CaptureStack(thread *starlark.Thread, skip int) []string {
	if thread == nil {
		return nil
	}

	stack := thread.CallStack()

	return FrameNames(stack, skip)
}

// FrameNames lists the frame names of stack from the innermost outwards,
// leaving out the skip innermost frames. Unnamed frames are reported as
// AnonymousFrame.
func FrameNames(stack starlark.CallStack, skip int) []string {
	frames := make([]string, 0, max(len(stack)-skip, 0))
	for i := len(stack) - 1 - skip; i >= 0; i-- {
		name := stack[i].Name
		if name == "" {
			name = AnonymousFrame
		}
		frames = append(frames, name)
	}

	return frames
}
