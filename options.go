package brainvm

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/brainvm/compiler"
	"github.com/deepnoodle-ai/brainvm/syntax"
	"github.com/deepnoodle-ai/brainvm/tape"
	"github.com/deepnoodle-ai/brainvm/vm"
)

// Option configures a compilation or execution.
type Option func(*options)

type options struct {
	settings   tape.Settings
	tapeLength uint32
	strict     *bool
	debug      *bool
	filename   string
	input      io.Reader
	output     io.Writer
	observer   vm.Observer
	logger     zerolog.Logger

	validators   []syntax.Validator
	transformers []syntax.Transformer
}

func collectOptions(opts ...Option) *options {
	o := &options{
		settings: tape.DefaultSettings(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// resolveSettings applies the individual overrides on top of the base
// settings.
func (o *options) resolveSettings() (tape.Settings, error) {
	settings := o.settings
	if o.tapeLength != 0 {
		var err error
		settings, err = tape.NewSettings(o.tapeLength, settings.Strict(), settings.Debug())
		if err != nil {
			return tape.Settings{}, err
		}
	}
	if o.strict != nil {
		settings = settings.WithStrict(*o.strict)
	}
	if o.debug != nil {
		settings = settings.WithDebug(*o.debug)
	}
	return settings, nil
}

func (o *options) compilerOpts() []compiler.Option {
	opts := []compiler.Option{
		compiler.WithLogger(o.logger),
		compiler.WithValidators(o.validators...),
		compiler.WithTransformers(o.transformers...),
	}
	if o.filename != "" {
		opts = append(opts, compiler.WithFilename(o.filename))
	}
	return opts
}

func (o *options) vmOpts() []vm.Option {
	opts := []vm.Option{vm.WithLogger(o.logger)}
	if o.input != nil {
		opts = append(opts, vm.WithInput(o.input))
	}
	if o.output != nil {
		opts = append(opts, vm.WithOutput(o.output))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	return opts
}

// WithSettings sets the base settings. WithTapeLength, WithStrict and
// WithDebug are applied on top of them regardless of option order.
func WithSettings(settings tape.Settings) Option {
	return func(o *options) {
		o.settings = settings
	}
}

// WithTapeLength sets the number of cells on the tape. An out of range
// length makes Compile and Run fail.
func WithTapeLength(length uint32) Option {
	return func(o *options) {
		o.tapeLength = length
	}
}

// WithStrict makes cell and tape overflow fatal instead of wrapping.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = &strict
	}
}

// WithDebug keeps breakpoints and disables optimization.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = &debug
	}
}

// WithFilename sets the filename reported in parse errors.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithInput sets the reader the program reads its input from.
func WithInput(r io.Reader) Option {
	return func(o *options) {
		o.input = r
	}
}

// WithOutput sets the writer the program writes its output to.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// WithObserver sets an observer for execution events.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithLogger sets the logger used by the optimizer and the VM.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSyntax restricts the language features a program may use. Programs
// that break the restrictions fail to compile with
// *syntax.ValidationErrors.
func WithSyntax(config syntax.SyntaxConfig) Option {
	return func(o *options) {
		o.validators = append(o.validators, syntax.NewSyntaxValidator(config))
	}
}

// WithValidators adds custom validators run on the syntax tree.
func WithValidators(validators ...syntax.Validator) Option {
	return func(o *options) {
		o.validators = append(o.validators, validators...)
	}
}

// WithTransformers adds transformers applied to the syntax tree before
// code is emitted.
func WithTransformers(transformers ...syntax.Transformer) Option {
	return func(o *options) {
		o.transformers = append(o.transformers, transformers...)
	}
}
