package request

import (
	"errors"
	"fmt"
	"sort"
)

// Snippet option keys recognised by the service.
const (
	OptMaxPassages       = "maxpassages"
	OptMaxTitleLength    = "max-title-length"
	OptMaxHeadlineLength = "max-headline-length"
	OptMaxPassageLength  = "max-passage-length"
	OptMaxTextLength     = "max-text-length"
)

// ErrUnknownOption is returned by Options.Set for keys the service does not know.
var ErrUnknownOption = errors.New("unknown snippet option")

// Options controls snippet sizes in the response.
type Options struct {
	// MaxPassages is the number of passages per document, 2 to 5.
	MaxPassages       int
	MaxTitleLength    int
	MaxHeadlineLength int
	MaxPassageLength  int
	MaxTextLength     int
}

// DefaultOptions returns the snippet sizes used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxPassages:       2,
		MaxTitleLength:    160,
		MaxHeadlineLength: 160,
		MaxPassageLength:  160,
		MaxTextLength:     640,
	}
}

func (o *Options) field(key string) *int {
	switch key {
	case OptMaxPassages:
		return &o.MaxPassages
	case OptMaxTitleLength:
		return &o.MaxTitleLength
	case OptMaxHeadlineLength:
		return &o.MaxHeadlineLength
	case OptMaxPassageLength:
		return &o.MaxPassageLength
	case OptMaxTextLength:
		return &o.MaxTextLength
	}
	return nil
}

// Set assigns the option named by key.
func (o *Options) Set(key string, value int) error {
	p := o.field(key)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	*p = value
	return nil
}

// Get returns the value of the option named by key.
func (o Options) Get(key string) (int, error) {
	p := o.field(key)
	if p == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	return *p, nil
}

// Apply sets every entry of values, stopping at the first unknown key.
// Keys are applied in sorted order so the reported error is stable.
func (o *Options) Apply(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := o.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}
