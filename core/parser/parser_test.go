package parser

import (
	"strings"
	"testing"
)

func TestParseJSON(t *testing.T) {
	text := `{
		"Resources": {
			"Bucket1": {
				"Type": "AWS::S3::Bucket",
				"Properties": {"BucketName": "my-bucket"}
			}
		}
	}`

	tmpl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	r, ok := tmpl.Get("Bucket1")
	if !ok {
		t.Fatalf("expected Bucket1 to be present")
	}
	if r.Type != "AWS::S3::Bucket" {
		t.Errorf("Type = %q, want AWS::S3::Bucket", r.Type)
	}
	if r.Properties["BucketName"] != "my-bucket" {
		t.Errorf("BucketName = %v, want my-bucket", r.Properties["BucketName"])
	}
}

func TestParseYAML(t *testing.T) {
	text := `
Resources:
  Queue1:
    Type: AWS::SQS::Queue
    Properties:
      VisibilityTimeout: 30
Outputs:
  QueueArn:
    Value: !GetAtt Queue1.Arn
`
	tmpl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	r, ok := tmpl.Get("Queue1")
	if !ok {
		t.Fatalf("expected Queue1 to be present")
	}
	if r.Type != "AWS::SQS::Queue" {
		t.Errorf("Type = %q, want AWS::SQS::Queue", r.Type)
	}
}

func TestParseMissingProperties(t *testing.T) {
	text := `{"Resources": {"R1": {"Type": "AWS::Custom::Widget"}}}`
	tmpl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	r, _ := tmpl.Get("R1")
	if r.Properties == nil || len(r.Properties) != 0 {
		t.Errorf("expected empty Properties map, got %v", r.Properties)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("not json or yaml: [[[")
	if err == nil {
		t.Fatalf("expected an error for invalid input")
	}
}

func TestParseNotAMapping(t *testing.T) {
	_, err := Parse(`["a", "b"]`)
	if err == nil {
		t.Fatalf("expected an error when the top level isn't a mapping")
	}
}

func TestParseMissingResourcesSection(t *testing.T) {
	_, err := Parse(`{"Parameters": {}}`)
	if err == nil {
		t.Fatalf("expected an error when Resources is missing")
	}
	if !strings.Contains(err.Error(), "Resources") {
		t.Errorf("error should mention Resources, got: %v", err)
	}
}

func TestParseResourceMissingType(t *testing.T) {
	_, err := Parse(`{"Resources": {"R1": {"Properties": {}}}}`)
	if err == nil {
		t.Fatalf("expected an error when a resource has no Type")
	}
}

func TestParseIgnoresSiblingSections(t *testing.T) {
	text := `{
		"Parameters": {"Env": {"Type": "String"}},
		"Resources": {"R1": {"Type": "AWS::S3::Bucket", "Properties": {}}},
		"Outputs": {"Out1": {"Value": "x"}}
	}`
	tmpl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(tmpl.Resources) != 1 {
		t.Errorf("expected exactly 1 resource, got %d", len(tmpl.Resources))
	}
}
