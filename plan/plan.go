// Package plan reads an insertion plan: the annotation texts to insert, the
// criteria locating each of them and the raw instanceof offsets recorded per
// method for offset based criteria.
package plan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/annotator/finder"
	"github.com/viant/annotator/occurrence"
	"gopkg.in/yaml.v3"
)

// ErrInvalid reports a plan that decodes but cannot be turned into requests.
var ErrInvalid = errors.New("invalid plan")

// Plan is a decoded insertion plan.
type Plan struct {
	Insertions  []*Insertion     `yaml:"requests"`
	Occurrences map[string][]int `yaml:"occurrences,omitempty"` // method signature -> increasing raw offsets
}

// Insertion is one request: Text goes before the element all Criteria select.
type Insertion struct {
	Text     string       `yaml:"text"`
	Criteria []*Criterion `yaml:"criteria"`
}

// Load reads and decodes the plan at URL; a nil fs uses afs.New().
func Load(ctx context.Context, fs afs.Service, URL string) (*Plan, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan %s: %w", URL, err)
	}
	ret, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", URL, err)
	}
	return ret, nil
}

// Decode parses a YAML plan. Unknown keys are rejected.
func Decode(data []byte) (*Plan, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	ret := &Plan{}
	if err := decoder.Decode(ret); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Validate checks that every insertion has text and at least one criterion,
// and that recorded offsets increase strictly per method.
func (p *Plan) Validate() error {
	for i, insertion := range p.Insertions {
		if insertion == nil || insertion.Text == "" {
			return fmt.Errorf("%w: request %d has no text", ErrInvalid, i)
		}
		if _, err := insertion.Criterion(); err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
	}
	for method, offsets := range p.Occurrences {
		for i := 1; i < len(offsets); i++ {
			if offsets[i] <= offsets[i-1] {
				return fmt.Errorf("%w: occurrences of %s are not strictly increasing at %d", ErrInvalid, method, offsets[i])
			}
		}
	}
	return nil
}

// Requests builds the finder requests in plan order.
func (p *Plan) Requests() ([]*finder.Request, error) {
	requests := make([]*finder.Request, 0, len(p.Insertions))
	for i, insertion := range p.Insertions {
		criterion, err := insertion.Criterion()
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		requests = append(requests, &finder.Request{Criterion: criterion, Text: insertion.Text})
	}
	return requests, nil
}

// Register records the plan occurrences into registry, methods in name order.
func (p *Plan) Register(registry *occurrence.Registry) {
	methods := make([]string, 0, len(p.Occurrences))
	for method := range p.Occurrences {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	for _, method := range methods {
		for _, offset := range p.Occurrences[method] {
			registry.Record(method, offset)
		}
	}
}
