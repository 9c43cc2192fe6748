package frame

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/capstanhq/capstan/pkg/solana"
)

// HandlerFunc executes one instruction against its loaded context. The
// data slice is the instruction payload with the discriminator stripped.
type HandlerFunc func(ctx *Context, data []byte) error

type handlerEntry struct {
	name    string
	disc    [DiscriminatorLength]byte
	schema  *Schema
	handler HandlerFunc
}

// Processor routes instructions to registered handlers by their 8-byte
// method discriminator, loading and validating each handler's schema
// before the handler runs. Hosts with their own dispatch can call Load
// directly instead.
type Processor struct {
	log       *logrus.Entry
	programID solana.Pubkey
	handlers  []handlerEntry
	loadOpts  []LoadOption
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithLogger overrides the processor's logger.
func WithLogger(log *logrus.Entry) ProcessorOption {
	return func(p *Processor) {
		p.log = log
	}
}

// WithLoadOptions forwards load options to every instruction's Load call.
func WithLoadOptions(opts ...LoadOption) ProcessorOption {
	return func(p *Processor) {
		p.loadOpts = opts
	}
}

// NewProcessor returns a new Processor for the program at programID.
func NewProcessor(programID solana.Pubkey, opts ...ProcessorOption) *Processor {
	p := &Processor{
		log:       logrus.StandardLogger().WithField("type", "frame/processor"),
		programID: programID,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Handle registers a handler for the named method. Registration happens
// once at program construction, so a duplicate name panics.
func (p *Processor) Handle(name string, schema *Schema, handler HandlerFunc) {
	var disc [DiscriminatorLength]byte
	copy(disc[:], InstructionDiscriminator(name))

	for _, e := range p.handlers {
		if e.disc == disc {
			panic(fmt.Sprintf("handler %q already registered", name))
		}
	}

	p.handlers = append(p.handlers, handlerEntry{
		name:    name,
		disc:    disc,
		schema:  schema,
		handler: handler,
	})
}

// Process executes one instruction: the discriminator selects the handler,
// the handler's schema loads and validates the instruction accounts, then
// the handler runs with the remaining payload.
func (p *Processor) Process(ix solana.Instruction) error {
	log := p.log.WithField("method", "Process")

	if ix.Program != p.programID {
		return ErrDeclaredProgramIDMismatch
	}

	if len(ix.Data) < DiscriminatorLength {
		return ErrInstructionMissing
	}

	var disc [DiscriminatorLength]byte
	copy(disc[:], ix.Data[:DiscriminatorLength])

	for _, e := range p.handlers {
		if e.disc != disc {
			continue
		}

		log = log.WithField("instruction", e.name)

		ctx, err := Load(p.programID, e.schema, ix.Accounts, p.loadOpts...)
		if err != nil {
			log.WithError(err).Warn("failure loading instruction accounts")
			return err
		}

		if err := e.handler(ctx, ix.Data[DiscriminatorLength:]); err != nil {
			log.WithError(err).Warn("failure executing instruction handler")
			return err
		}

		return nil
	}

	return ErrInstructionFallbackNotFound
}
