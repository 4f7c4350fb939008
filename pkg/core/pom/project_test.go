package pom

import "testing"

func TestInherit(t *testing.T) {
	child, err := Decode([]byte(`<project>
  <parent><groupId>org.example</groupId><artifactId>base</artifactId><version>2.0</version></parent>
  <artifactId>child</artifactId>
  <properties><shared>child</shared></properties>
  <dependencies>
    <dependency><groupId>org.slf4j</groupId><artifactId>slf4j-api</artifactId></dependency>
  </dependencies>
</project>`))
	if err != nil {
		t.Fatal(err)
	}
	parent, err := Decode([]byte(`<project>
  <groupId>org.example</groupId>
  <artifactId>base</artifactId>
  <version>2.0</version>
  <properties><shared>parent</shared><slf4j.version>2.0.9</slf4j.version></properties>
  <dependencyManagement><dependencies>
    <dependency><groupId>org.slf4j</groupId><artifactId>slf4j-api</artifactId><version>${slf4j.version}</version></dependency>
  </dependencies></dependencyManagement>
  <dependencies>
    <dependency><groupId>com.google.code.findbugs</groupId><artifactId>jsr305</artifactId><version>3.0.2</version></dependency>
  </dependencies>
</project>`))
	if err != nil {
		t.Fatal(err)
	}

	merged := child.Inherit(parent)
	if len(child.Dependencies) != 1 {
		t.Error("Inherit must not modify the receiver")
	}

	m, err := Build(merged, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Coordinate.Group != "org.example" || m.Coordinate.Version != "2.0" {
		t.Errorf("Coordinate = %+v", m.Coordinate)
	}
	if m.Properties["shared"] != "child" {
		t.Errorf("child property should win, got %q", m.Properties["shared"])
	}
	if len(m.Dependencies) != 2 {
		t.Fatalf("Dependencies = %+v, want child + inherited", m.Dependencies)
	}
	if m.Dependencies[0].Version != "2.0.9" {
		t.Errorf("managed version from parent = %q, want 2.0.9", m.Dependencies[0].Version)
	}
	if m.Dependencies[1].Artifact != "jsr305" {
		t.Errorf("inherited dependency = %+v", m.Dependencies[1])
	}
}
