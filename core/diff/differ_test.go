package diff

import (
	"testing"

	"cdk-cost-analyzer/core/types"
)

func tmpl(resources map[string]types.ResourceWithId) *types.Template {
	return &types.Template{Resources: resources}
}

func res(id, typ string, props map[string]interface{}) types.ResourceWithId {
	if props == nil {
		props = map[string]interface{}{}
	}
	return types.ResourceWithId{LogicalID: id, Type: typ, Properties: props}
}

func TestDiffAdded(t *testing.T) {
	base := tmpl(map[string]types.ResourceWithId{
		"Bucket1": res("Bucket1", "AWS::S3::Bucket", nil),
	})
	target := tmpl(map[string]types.ResourceWithId{
		"Bucket1": res("Bucket1", "AWS::S3::Bucket", nil),
		"Bucket2": res("Bucket2", "AWS::S3::Bucket", nil),
	})

	d := Diff(base, target)
	if len(d.Added) != 1 || d.Added[0].LogicalID != "Bucket2" {
		t.Fatalf("expected Bucket2 added, got %+v", d.Added)
	}
	if len(d.Removed) != 0 || len(d.Modified) != 0 {
		t.Fatalf("expected no removed/modified, got removed=%v modified=%v", d.Removed, d.Modified)
	}
}

func TestDiffRemoved(t *testing.T) {
	base := tmpl(map[string]types.ResourceWithId{
		"Bucket1": res("Bucket1", "AWS::S3::Bucket", nil),
	})
	target := tmpl(map[string]types.ResourceWithId{})

	d := Diff(base, target)
	if len(d.Removed) != 1 || d.Removed[0].LogicalID != "Bucket1" {
		t.Fatalf("expected Bucket1 removed, got %+v", d.Removed)
	}
}

func TestDiffModified(t *testing.T) {
	base := tmpl(map[string]types.ResourceWithId{
		"Fn1": res("Fn1", "AWS::Lambda::Function", map[string]interface{}{"MemorySize": float64(128)}),
	})
	target := tmpl(map[string]types.ResourceWithId{
		"Fn1": res("Fn1", "AWS::Lambda::Function", map[string]interface{}{"MemorySize": float64(1024)}),
	})

	d := Diff(base, target)
	if len(d.Modified) != 1 {
		t.Fatalf("expected 1 modified, got %d", len(d.Modified))
	}
	if d.Modified[0].LogicalID != "Fn1" {
		t.Errorf("LogicalID = %q, want Fn1", d.Modified[0].LogicalID)
	}
}

func TestDiffTypeChangeIsRemoveAndAdd(t *testing.T) {
	base := tmpl(map[string]types.ResourceWithId{
		"R1": res("R1", "AWS::EC2::Instance", nil),
	})
	target := tmpl(map[string]types.ResourceWithId{
		"R1": res("R1", "AWS::Lambda::Function", nil),
	})

	d := Diff(base, target)
	if len(d.Modified) != 0 {
		t.Fatalf("type change must not appear as modified, got %+v", d.Modified)
	}
	if len(d.Added) != 1 || len(d.Removed) != 1 {
		t.Fatalf("expected one add and one remove, got added=%v removed=%v", d.Added, d.Removed)
	}
	if d.Added[0].LogicalID != "R1" || d.Removed[0].LogicalID != "R1" {
		t.Fatalf("expected same logical id R1 on both sides")
	}
}

func TestDiffIdempotent(t *testing.T) {
	template := tmpl(map[string]types.ResourceWithId{
		"A": res("A", "AWS::S3::Bucket", map[string]interface{}{
			"Tags": []interface{}{"b", "a"},
			"Nested": map[string]interface{}{
				"Z": 1, "A": 2,
			},
		}),
	})

	d := Diff(template, template)
	if len(d.Added) != 0 || len(d.Removed) != 0 || len(d.Modified) != 0 {
		t.Fatalf("diff(T, T) must be empty, got %+v", d)
	}
}

func TestDiffKeyOrderIndependence(t *testing.T) {
	base := tmpl(map[string]types.ResourceWithId{
		"A": res("A", "AWS::S3::Bucket", map[string]interface{}{"X": 1, "Y": 2}),
	})
	target := tmpl(map[string]types.ResourceWithId{
		"A": res("A", "AWS::S3::Bucket", map[string]interface{}{"Y": 2, "X": 1}),
	})

	d := Diff(base, target)
	if len(d.Modified) != 0 {
		t.Fatalf("reordering map keys must not produce a diff, got %+v", d.Modified)
	}
}

func TestDiffPreservesListOrder(t *testing.T) {
	base := tmpl(map[string]types.ResourceWithId{
		"A": res("A", "AWS::EC2::SecurityGroup", map[string]interface{}{
			"CidrBlocks": []interface{}{"10.0.0.0/24", "10.0.1.0/24"},
		}),
	})
	target := tmpl(map[string]types.ResourceWithId{
		"A": res("A", "AWS::EC2::SecurityGroup", map[string]interface{}{
			"CidrBlocks": []interface{}{"10.0.1.0/24", "10.0.0.0/24"},
		}),
	})

	d := Diff(base, target)
	if len(d.Modified) != 1 {
		t.Fatalf("reordering a list must change semantics, expected 1 modified, got %d", len(d.Modified))
	}
}

func TestDiffDisjointness(t *testing.T) {
	base := tmpl(map[string]types.ResourceWithId{
		"Same":    res("Same", "AWS::S3::Bucket", nil),
		"Removed": res("Removed", "AWS::S3::Bucket", nil),
		"Changed": res("Changed", "AWS::Lambda::Function", map[string]interface{}{"MemorySize": float64(128)}),
	})
	target := tmpl(map[string]types.ResourceWithId{
		"Same":    res("Same", "AWS::S3::Bucket", nil),
		"Added":   res("Added", "AWS::S3::Bucket", nil),
		"Changed": res("Changed", "AWS::Lambda::Function", map[string]interface{}{"MemorySize": float64(256)}),
	})

	d := Diff(base, target)
	seen := map[string]int{}
	for _, r := range d.Added {
		seen[r.LogicalID]++
	}
	for _, r := range d.Removed {
		seen[r.LogicalID]++
	}
	for _, m := range d.Modified {
		seen[m.LogicalID]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("logical id %q appears in %d sets, want exactly 1", id, count)
		}
	}
	if _, ok := seen["Same"]; ok {
		t.Errorf("unchanged resource Same must not appear in any set")
	}
}
