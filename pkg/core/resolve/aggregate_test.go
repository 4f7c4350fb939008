package resolve

import (
	"context"
	"testing"

	"github.com/matzehuels/gavtree/pkg/core/pom"
)

func TestAggregateSingleModule(t *testing.T) {
	src := newSource(model("g:lib:1"))
	m, err := pom.Parse([]byte(`<project><groupId>g</groupId><artifactId>app</artifactId><version>1</version>
<dependencies><dependency><groupId>g</groupId><artifactId>lib</artifactId><version>1</version></dependency></dependencies></project>`), pom.Options{})
	if err != nil {
		t.Fatal(err)
	}

	res, err := New(src, Options{}).Aggregate(context.Background(), m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.MultiModule {
		t.Error("MultiModule = true")
	}
	if len(res.Modules) != 1 || res.Modules[0].Name != "app" {
		t.Fatalf("Modules = %+v", res.Modules)
	}
	if len(res.Tree.Children) != 1 || res.Tree.Children[0].Status != StatusResolved {
		t.Errorf("Tree = %+v", res.Tree)
	}
	if res.Modules[0].Tree == res.Tree {
		t.Error("module tree shares nodes with merged tree")
	}
}

func TestAggregateMultiModule(t *testing.T) {
	src := newSource(model("g:lib:1"))
	m, err := pom.Parse([]byte(`<project>
  <groupId>g</groupId><artifactId>parent</artifactId><version>2.0</version><packaging>pom</packaging>
  <modules><module>core</module><module>web</module></modules>
  <dependencies><dependency><groupId>g</groupId><artifactId>lib</artifactId><version>1</version></dependency></dependencies>
</project>`), pom.Options{})
	if err != nil {
		t.Fatal(err)
	}

	res, err := New(src, Options{}).Aggregate(context.Background(), m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.MultiModule || len(res.Modules) != 2 {
		t.Fatalf("result = %+v", res)
	}
	if res.Parent.Artifact != "parent" {
		t.Errorf("Parent = %+v", res.Parent)
	}

	children := res.Tree.Children
	if len(children) != 3 {
		t.Fatalf("merged children = %d, want 3", len(children))
	}
	if children[0].Artifact != "lib" || children[0].Status != StatusResolved {
		t.Errorf("first child = %+v", children[0])
	}
	for i, name := range []string{"core", "web"} {
		n := children[i+1]
		if n.Artifact != name || n.Status != StatusLocal || n.Message != LocalModuleMessage || n.Version != "2.0" {
			t.Errorf("placeholder %d = %+v", i, n)
		}
		if res.Modules[i].Tree == n {
			t.Error("placeholder shared between module and merged tree")
		}
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1 (modules are never fetched)", src.calls)
	}
}
