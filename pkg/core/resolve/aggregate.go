package resolve

import (
	"context"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/pom"
)

// LocalModuleMessage is attached to every sub-module placeholder.
const LocalModuleMessage = "module detected, full analysis requires that module's own manifest"

// ModuleDescriptor describes one module of a project.
type ModuleDescriptor struct {
	Name       string              `json:"moduleName" yaml:"moduleName"`
	Coordinate artifact.Coordinate `json:"coordinate" yaml:"coordinate"`
	Packaging  string              `json:"packaging" yaml:"packaging"`
	Tree       *Node               `json:"dependencyTree" yaml:"dependencyTree"`
}

// MultiModuleResult is the outcome of [Resolver.Aggregate].
type MultiModuleResult struct {
	Parent      artifact.Coordinate `json:"parent" yaml:"parent"`
	MultiModule bool                `json:"isMultiModule" yaml:"isMultiModule"`
	Modules     []ModuleDescriptor  `json:"modules" yaml:"modules"`
	Tree        *Node               `json:"mergedTree" yaml:"mergedTree"`
}

// Aggregate resolves a project model with its declared modules.
//
// Without modules the result wraps a plain resolution of the project as its
// only module. With modules, the project's own dependencies are resolved and
// every module is added under the project root as a [StatusLocal]
// placeholder; module contents are not fetched.
func (r *Resolver) Aggregate(ctx context.Context, m *pom.Model, customRepos []string) (*MultiModuleResult, error) {
	tree, err := r.ResolveDependencies(ctx, m.Coordinate, m.Dependencies, customRepos)
	if err != nil {
		return nil, err
	}

	res := &MultiModuleResult{
		Parent:      m.Coordinate,
		MultiModule: m.MultiModule(),
	}
	if !m.MultiModule() {
		res.Modules = []ModuleDescriptor{{
			Name:       m.Coordinate.Artifact,
			Coordinate: m.Coordinate,
			Packaging:  m.Packaging,
			Tree:       tree.Clone(),
		}}
		res.Tree = tree
		return res, nil
	}

	for _, name := range m.Modules {
		placeholder := localNode(m.Coordinate, name)
		res.Modules = append(res.Modules, ModuleDescriptor{
			Name:       name,
			Coordinate: placeholder.Coordinate,
			Packaging:  artifact.DefaultExtension,
			Tree:       placeholder,
		})
		tree.Children = append(tree.Children, localNode(m.Coordinate, name))
	}
	res.Tree = tree
	return res, nil
}

func localNode(project artifact.Coordinate, module string) *Node {
	return &Node{
		Coordinate: artifact.Coordinate{
			Group:     project.Group,
			Artifact:  module,
			Version:   project.Version,
			Extension: artifact.DefaultExtension,
		},
		Scope:    artifact.ScopeCompile,
		Status:   StatusLocal,
		Message:  LocalModuleMessage,
		Children: []*Node{},
	}
}
