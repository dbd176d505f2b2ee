package plan

import (
	"fmt"

	"github.com/viant/annotator/criteria"
)

// Criterion is one entry of a request's criteria list. An entry usually sets
// a single key; entries setting several keys add them all to the conjunction.
type Criterion struct {
	Class            *string `yaml:"class,omitempty"`
	Method           *string `yaml:"method,omitempty"`
	Param            *int    `yaml:"param,omitempty"`
	Receiver         *string `yaml:"receiver,omitempty"`
	Return           *string `yaml:"return,omitempty"`
	Field            *string `yaml:"field,omitempty"`
	Local            *string `yaml:"local,omitempty"`
	InstanceOf       *int    `yaml:"instanceof,omitempty"`
	InstanceOfOffset *int    `yaml:"instanceofOffset,omitempty"`
}

// Criterion combines the insertion's entries into one criterion. The method
// key restricts the enclosing method and names the method of param and
// instanceof entries.
func (i *Insertion) Criterion() (criteria.Criterion, error) {
	method := ""
	for _, entry := range i.Criteria {
		if entry != nil && entry.Method != nil {
			if method != "" && method != *entry.Method {
				return nil, fmt.Errorf("%w: conflicting methods %s and %s", ErrInvalid, method, *entry.Method)
			}
			method = *entry.Method
		}
	}

	var all criteria.All
	for _, entry := range i.Criteria {
		if entry == nil {
			continue
		}
		members, err := entry.members(method)
		if err != nil {
			return nil, err
		}
		all = append(all, members...)
	}
	switch len(all) {
	case 0:
		return nil, fmt.Errorf("%w: no criteria", ErrInvalid)
	case 1:
		return all[0], nil
	}
	return all, nil
}

func (c *Criterion) members(method string) ([]criteria.Criterion, error) {
	var result []criteria.Criterion
	if c.Class != nil {
		result = append(result, criteria.InClass{Name: *c.Class})
	}
	if c.Method != nil {
		result = append(result, criteria.InMethod{Signature: *c.Method})
	}
	if c.Param != nil {
		if *c.Param < 0 {
			return nil, fmt.Errorf("%w: negative parameter index %d", ErrInvalid, *c.Param)
		}
		result = append(result, criteria.Param{Method: method, Index: *c.Param})
	}
	if c.Receiver != nil {
		result = append(result, criteria.Receiver{Method: *c.Receiver})
	}
	if c.Return != nil {
		result = append(result, criteria.Return{Method: *c.Return})
	}
	if c.Field != nil {
		result = append(result, criteria.Field{Name: *c.Field})
	}
	if c.Local != nil {
		result = append(result, criteria.Local{Name: *c.Local})
	}
	if c.InstanceOf != nil {
		result = append(result, criteria.InstanceOf{Method: method, Index: *c.InstanceOf})
	}
	if c.InstanceOfOffset != nil {
		if method == "" {
			return nil, fmt.Errorf("%w: instanceofOffset %d requires a method", ErrInvalid, *c.InstanceOfOffset)
		}
		result = append(result, criteria.InstanceOfOffset{Method: method, Offset: *c.InstanceOfOffset})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: empty criterion", ErrInvalid)
	}
	return result, nil
}
