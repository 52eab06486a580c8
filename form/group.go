package form

import "github.com/orgintake/intake/model"

// Literal bucket names for questions without grouping metadata.
const (
	DefaultSection    = "General"
	DefaultSubsection = "No Subsection"
)

type Subsection struct {
	Name      string
	Questions []model.Question
}

type Section struct {
	Name        string
	Subsections []*Subsection
}

// BuildGroups partitions the top-level questions into ordered
// section/subsection groups, preserving fetch order within each leaf.
// Conditional questions are placed under their parent at render time and
// never appear in a group, whatever their own section metadata says.
func BuildGroups(questions []model.Question) []*Section {
	var sections []*Section
	bySection := make(map[string]*Section)

	for _, q := range questions {
		if !q.TopLevel() {
			continue
		}

		name := q.Section
		if name == "" {
			name = DefaultSection
		}
		sec, ok := bySection[name]
		if !ok {
			sec = &Section{Name: name}
			bySection[name] = sec
			sections = append(sections, sec)
		}

		subName := q.Subsection
		if subName == "" {
			subName = DefaultSubsection
		}
		var sub *Subsection
		for _, have := range sec.Subsections {
			if have.Name == subName {
				sub = have
				break
			}
		}
		if sub == nil {
			sub = &Subsection{Name: subName}
			sec.Subsections = append(sec.Subsections, sub)
		}
		sub.Questions = append(sub.Questions, q)
	}

	return sections
}

// Collapse tracks expand/collapse flags, one per section key and one per
// section+subsection composite key. True means collapsed.
type Collapse map[string]bool

func SectionKey(section string) string {
	return section
}

func SubsectionKey(section, subsection string) string {
	return section + "::" + subsection
}

// NewCollapse discovers every group key and starts it expanded. Called
// once per successful fetch, never on answer changes.
func NewCollapse(sections []*Section) Collapse {
	c := make(Collapse)
	for _, sec := range sections {
		c[SectionKey(sec.Name)] = false
		for _, sub := range sec.Subsections {
			if sub.Name == DefaultSubsection {
				continue
			}
			c[SubsectionKey(sec.Name, sub.Name)] = false
		}
	}
	return c
}

// Toggle flips exactly one flag. Unknown keys are ignored so a stale
// client cannot grow the map.
func (c Collapse) Toggle(key string) {
	if _, ok := c[key]; ok {
		c[key] = !c[key]
	}
}

func (c Collapse) Collapsed(key string) bool {
	return c[key]
}
