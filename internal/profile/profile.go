// Package profile loads the project-grouped account credentials the scheduler
// iterates over. The table is built once at startup; load failures are fatal.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Yanu403/sunkong/internal/credential"
)

// Project is one named group of accounts. Account order follows the input
// file, and the scheduler visits accounts in exactly that order.
type Project struct {
	Name     string
	Accounts []*credential.Record
}

// Table is the full project list in input-file order. Run policy is applied
// per project, so project order matters as much as account order.
type Table struct {
	projects []Project
}

type fileFormat struct {
	Projects []struct {
		Name     string `yaml:"name"`
		Accounts []struct {
			InitData string `yaml:"init_data"`
		} `yaml:"accounts"`
	} `yaml:"projects"`
}

// Load reads the profiles file and decodes every credential. Any undecodable
// credential aborts the whole load; a table with silently dropped accounts
// would mask a credential that needs re-issuing.
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	if len(f.Projects) == 0 {
		return nil, fmt.Errorf("profiles file %s lists no projects", path)
	}

	t := &Table{}
	seen := map[string]bool{}
	for _, p := range f.Projects {
		if p.Name == "" {
			return nil, fmt.Errorf("profiles file %s has a project with no name", path)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate project %q in profiles file", p.Name)
		}
		seen[p.Name] = true

		proj := Project{Name: p.Name}
		for i, a := range p.Accounts {
			rec, err := credential.Decode(a.InitData)
			if err != nil {
				return nil, fmt.Errorf("project %q account %d: %w", p.Name, i+1, err)
			}
			proj.Accounts = append(proj.Accounts, rec)
		}
		t.projects = append(t.projects, proj)
	}
	return t, nil
}

// NewTable builds a table from already-decoded projects, preserving order.
func NewTable(projects []Project) *Table {
	return &Table{projects: projects}
}

// Projects returns the project list in input order.
func (t *Table) Projects() []Project { return t.projects }

// ProjectCount reports how many projects the table holds.
func (t *Table) ProjectCount() int { return len(t.projects) }

// SummaryLine is one project's account count for display.
type SummaryLine struct {
	Project  string
	Accounts int
}

// Summary reports the account count per project, in table order.
func (t *Table) Summary() []SummaryLine {
	out := make([]SummaryLine, 0, len(t.projects))
	for _, p := range t.projects {
		out = append(out, SummaryLine{Project: p.Name, Accounts: len(p.Accounts)})
	}
	return out
}
