package metadata

import (
	"fmt"
)

// Agent is a person or organisation responsible for the archived item, e.g.
// the photographer of an image.
type Agent struct {
	names []*Name
	role  RoleTermEnum
	uris  []string
}

// NewAgent returns an Agent. Every URI is validated before the Agent is
// returned.
//
// Options honored: WithRole, WithURIs.
func NewAgent(names []Input[Name], opts ...Option) (*Agent, error) {
	o := newOptions(opts)
	if _, ok := _RoleTermEnumValueToName[o.role]; !ok {
		return nil, validationErrorf("role", o.role.String(), "unknown role term")
	}
	resolved, err := resolve("Name", names, NameFromSpec)
	if err != nil {
		return nil, err
	}
	uris := make([]string, 0, len(o.uris))
	for _, uri := range o.uris {
		if err := ValidateURI(uri); err != nil {
			return nil, err
		}
		uris = append(uris, uri)
	}
	return &Agent{names: resolved, role: o.role, uris: uris}, nil
}

// AgentFromSpec builds an Agent from the keys names, role and uris.
func AgentFromSpec(s Spec) (*Agent, error) {
	r := newSpecReader("Agent", s)
	var opts []Option
	raw, _ := r.raw("names")
	names, err := inputsOf[Name]("Name", raw)
	if err != nil {
		r.fail(err)
	}
	if v, ok := roleOf(r); ok {
		opts = append(opts, WithRole(v))
	}
	if v, ok := r.strs("uris"); ok {
		opts = append(opts, WithURIs(v...))
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return NewAgent(names, opts...)
}

// Names returns the names of the agent in the order given.
func (a *Agent) Names() []*Name {
	return append([]*Name(nil), a.names...)
}

func (a *Agent) Role() RoleTermEnum { return a.role }

func (a *Agent) URIs() []string {
	return append([]string(nil), a.uris...)
}

func (a *Agent) String() string {
	if len(a.names) == 0 {
		return a.role.String()
	}
	return fmt.Sprintf("%s: %s", a.role, a.names[0].fullName)
}
