package shape

import (
	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceBIM/pkg/ifc/catalog"
)

// Observer receives classification and extraction events. Implementations
// must be safe for concurrent use. ItemUnclassified receives the identity
// whose item was rejected; its type may be unset.
type Observer interface {
	ItemClassified(repType catalog.RepresentationType, itemType string)
	ItemUnclassified(id Identity)
	Extracted(identifier catalog.RepresentationIdentifier, points int, err error)
}

type nopObserver struct{}

func (nopObserver) ItemClassified(catalog.RepresentationType, string) {}
func (nopObserver) ItemUnclassified(Identity) {}
func (nopObserver) Extracted(catalog.RepresentationIdentifier, int, error) {}

type options struct {
	logger   *zap.Logger
	observer Observer
}

// Option configures an Identifier or Extractor.
type Option func(*options)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver sets the observer notified of classifications and extractions.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Outcome labels an extraction result: "absent" on error, "empty" for a
// valid result without points, "ok" otherwise.
func Outcome(points int, err error) string {
	switch {
	case err != nil:
		return "absent"
	case points == 0:
		return "empty"
	}
	return "ok"
}
