package metadata

// DescriptiveMetadata is the descriptive metadata of an archived item. Its
// collections keep the order of the source they were built from.
//
// A DescriptiveMetadata is built once and read afterwards; it is not safe
// for concurrent mutation.
type DescriptiveMetadata struct {
	agents       []*Agent
	titles       []*Title
	descriptions []*Description
	keywords     []*Keyword
}

// Contents lists the entities of a DescriptiveMetadata, either constructed
// or as specs. Every collection is optional.
type Contents struct {
	Agents       []Input[Agent]
	Titles       []Input[Title]
	Descriptions []Input[Description]
	Keywords     []Input[Keyword]
}

// NewDescriptiveMetadata constructs the entities given as specs. It either
// succeeds as a whole or returns an error and no aggregate.
func NewDescriptiveMetadata(c Contents) (*DescriptiveMetadata, error) {
	var (
		m   = &DescriptiveMetadata{}
		err error
	)
	if m.agents, err = resolve("Agent", c.Agents, AgentFromSpec); err != nil {
		return nil, err
	}
	if m.titles, err = resolve("Title", c.Titles, TitleFromSpec); err != nil {
		return nil, err
	}
	if m.descriptions, err = resolve("Description", c.Descriptions, DescriptionFromSpec); err != nil {
		return nil, err
	}
	if m.keywords, err = resolve("Keyword", c.Keywords, KeywordFromSpec); err != nil {
		return nil, err
	}
	return m, nil
}

// DescriptiveMetadataFromSpec builds the aggregate from the keys agents,
// titles, descriptions and keywords. It accepts the documents produced by
// ToDict.
func DescriptiveMetadataFromSpec(s Spec) (*DescriptiveMetadata, error) {
	var (
		r   = newSpecReader("DescriptiveMetadata", s)
		c   Contents
		err error
	)
	raw, _ := r.raw("agents")
	if c.Agents, err = inputsOf[Agent]("Agent", raw); err != nil {
		r.fail(err)
	}
	raw, _ = r.raw("titles")
	if c.Titles, err = inputsOf[Title]("Title", raw); err != nil {
		r.fail(err)
	}
	raw, _ = r.raw("descriptions")
	if c.Descriptions, err = inputsOf[Description]("Description", raw); err != nil {
		r.fail(err)
	}
	raw, _ = r.raw("keywords")
	if c.Keywords, err = inputsOf[Keyword]("Keyword", raw); err != nil {
		r.fail(err)
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return NewDescriptiveMetadata(c)
}

func (m *DescriptiveMetadata) Agents() []*Agent {
	return append([]*Agent(nil), m.agents...)
}

func (m *DescriptiveMetadata) Titles() []*Title {
	return append([]*Title(nil), m.titles...)
}

func (m *DescriptiveMetadata) Descriptions() []*Description {
	return append([]*Description(nil), m.descriptions...)
}

func (m *DescriptiveMetadata) Keywords() []*Keyword {
	return append([]*Keyword(nil), m.keywords...)
}

// Empty reports whether the aggregate holds no entity at all.
func (m *DescriptiveMetadata) Empty() bool {
	return len(m.agents)+len(m.titles)+len(m.descriptions)+len(m.keywords) == 0
}

// Title returns the value of the first title or an empty string.
func (m *DescriptiveMetadata) Title() string {
	if len(m.titles) == 0 {
		return ""
	}
	return m.titles[0].value
}
