package frontmatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-proposals/internal/domain"
)

func newTestSchema(t *testing.T, class domain.DocumentClass) *Schema {
	t.Helper()
	schema, err := NewSchema(class, domain.NewStatusSet(domain.DefaultStatuses...))
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}
	return schema
}

func validSEP() map[string]any {
	return map[string]any{
		"file":    "content/seps/sep-1.md",
		"sep":     1,
		"title":   "Bridge fees",
		"type":    "Governance",
		"status":  "Implemented",
		"author":  "alice",
		"network": "Ethereum",
		"created": "2023-05-04",
	}
}

func validSCCP() map[string]any {
	return map[string]any{
		"file":     "content/sccp/sccp-7.md",
		"sccp":     "7",
		"title":    "Raise collateral ratio",
		"type":     "Governance",
		"status":   "Draft",
		"author":   "bob",
		"network":  "Optimism",
		"proposal": "https://tally.xyz/gov/synthetix/proposal/abcdef1",
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var validationErr *goerrors.Error
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *goerrors.Error, got %T: %v", err, err)
	}
	if validationErr.Category != goerrors.CategoryValidation {
		t.Fatalf("expected validation category, got %s", validationErr.Category)
	}
	if validationErr.TextCode != TextCodeInvalid {
		t.Fatalf("expected text code %s, got %s", TextCodeInvalid, validationErr.TextCode)
	}
	out := make(map[string]string, len(validationErr.ValidationErrors))
	for _, fe := range validationErr.ValidationErrors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestSchemaAcceptsValidRecords(t *testing.T) {
	cases := []struct {
		name   string
		class  domain.DocumentClass
		record map[string]any
	}{
		{name: "sep", class: domain.ClassSEP, record: validSEP()},
		{name: "sccp", class: domain.ClassSCCP, record: validSCCP()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			schema := newTestSchema(t, tc.class)
			if _, err := schema.CastAndValidate(tc.record); err != nil {
				t.Fatalf("expected valid record, got %v", err)
			}
		})
	}
}

func TestSchemaAcceptsNullOptionalFields(t *testing.T) {
	record := validSEP()
	for _, key := range []string{"proposal", "implementor", "release", "created", "updated", "requires", "discussions-to"} {
		record[key] = nil
	}
	schema := newTestSchema(t, domain.ClassSEP)
	if _, err := schema.CastAndValidate(record); err != nil {
		t.Fatalf("expected nulls to be accepted, got %v", err)
	}
}

func TestSchemaReportsMissingRequiredFields(t *testing.T) {
	record := validSEP()
	delete(record, "title")
	delete(record, "author")
	delete(record, "sep")

	schema := newTestSchema(t, domain.ClassSEP)
	_, err := schema.CastAndValidate(record)
	if err == nil {
		t.Fatal("expected validation error")
	}
	got := fieldErrors(t, err)
	for _, field := range []string{"title", "author", "sep"} {
		if _, ok := got[field]; !ok {
			t.Fatalf("expected error for %s, got %v", field, got)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected exactly 3 field errors, got %v", got)
	}
}

func TestSchemaValidationErrorsAreSorted(t *testing.T) {
	record := validSCCP()
	delete(record, "title")
	record["type"] = "Nope"
	record["author"] = ""

	schema := newTestSchema(t, domain.ClassSCCP)
	_, err := schema.CastAndValidate(record)

	var validationErr *goerrors.Error
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *goerrors.Error, got %v", err)
	}
	fields := make([]string, 0, len(validationErr.ValidationErrors))
	for _, fe := range validationErr.ValidationErrors {
		fields = append(fields, fe.Field)
	}
	if strings.Join(fields, ",") != "author,title,type" {
		t.Fatalf("unexpected field order %v", fields)
	}
	if validationErr.Metadata["file"] != "content/sccp/sccp-7.md" {
		t.Fatalf("expected file metadata, got %v", validationErr.Metadata)
	}
	if _, ok := validationErr.Metadata["value"].(map[string]any); !ok {
		t.Fatalf("expected value metadata, got %T", validationErr.Metadata["value"])
	}
}

func TestSchemaProposalPattern(t *testing.T) {
	cases := []struct {
		url   string
		valid bool
	}{
		{url: "https://tally.xyz/gov/snx/proposal/abcdefg", valid: true},
		{url: "http://tally.xyz/x/1234567890", valid: true},
		{url: "https://tally.xyz/gov/snx/proposal/abc", valid: false},
		{url: "https://example.com/gov/abcdefghij", valid: false},
		{url: "", valid: false},
	}

	schema := newTestSchema(t, domain.ClassSCCP)
	for _, tc := range cases {
		record := validSCCP()
		record["proposal"] = tc.url
		_, err := schema.CastAndValidate(record)
		if tc.valid && err != nil {
			t.Fatalf("%q: expected valid, got %v", tc.url, err)
		}
		if !tc.valid {
			got := fieldErrors(t, err)
			if got["proposal"] == "" {
				t.Fatalf("%q: expected proposal error, got %v", tc.url, got)
			}
		}
	}
}

func TestSchemaRejectsUnknownStatus(t *testing.T) {
	record := validSEP()
	record["status"] = "Pending"

	schema := newTestSchema(t, domain.ClassSEP)
	_, err := schema.CastAndValidate(record)
	got := fieldErrors(t, err)
	if !strings.HasPrefix(got["status"], "must be one of:") {
		t.Fatalf("expected status enum error, got %v", got)
	}
}

func TestSchemaStatusMayBeAbsentButNotNull(t *testing.T) {
	schema := newTestSchema(t, domain.ClassSEP)

	record := validSEP()
	delete(record, "status")
	if _, err := schema.CastAndValidate(record); err != nil {
		t.Fatalf("expected missing status to be accepted, got %v", err)
	}

	record["status"] = nil
	_, err := schema.CastAndValidate(record)
	got := fieldErrors(t, err)
	if got["status"] != "cannot be null" {
		t.Fatalf("expected null status error, got %v", got)
	}
}

func TestSchemaNetworkOverride(t *testing.T) {
	sep := newTestSchema(t, domain.ClassSEP)
	record := validSEP()
	record["network"] = "Mars"
	if _, err := sep.CastAndValidate(record); err != nil {
		t.Fatalf("expected SEP to accept any network, got %v", err)
	}

	sccp := newTestSchema(t, domain.ClassSCCP)
	record = validSCCP()
	record["network"] = "Mars"
	_, err := sccp.CastAndValidate(record)
	got := fieldErrors(t, err)
	if got["network"] == "" {
		t.Fatalf("expected SCCP network error, got %v", got)
	}
}

func TestSchemaRejectsUnknownKeys(t *testing.T) {
	schema := newTestSchema(t, domain.ClassSEP)
	record := validSEP()
	record["reviewers"] = []any{"carol"}

	_, err := schema.CastAndValidate(record)
	got := fieldErrors(t, err)
	if got["reviewers"] != "key not expected" {
		t.Fatalf("expected unknown key error, got %v", got)
	}
}

func TestSchemaRejectsClassNumberOfOtherClass(t *testing.T) {
	schema := newTestSchema(t, domain.ClassSCCP)
	record := validSCCP()
	record["sep"] = 3

	_, err := schema.CastAndValidate(record)
	if got := fieldErrors(t, err); got["sep"] == "" {
		t.Fatalf("expected sep to be rejected for sccp, got %v", got)
	}
}

func TestSchemaTypeErrors(t *testing.T) {
	schema := newTestSchema(t, domain.ClassSEP)
	record := validSEP()
	record["sep"] = "twelve"
	record["created"] = "last tuesday"
	record["title"] = map[string]any{"en": "Bridge"}

	_, err := schema.CastAndValidate(record)
	got := fieldErrors(t, err)
	if got["sep"] != "must be a number" {
		t.Fatalf("expected number error, got %q", got["sep"])
	}
	if got["created"] != "must be a date" {
		t.Fatalf("expected date error, got %q", got["created"])
	}
	if got["title"] != "must be a string" {
		t.Fatalf("expected string error, got %q", got["title"])
	}
}

func TestCastCoercesDeclaredFields(t *testing.T) {
	schema := newTestSchema(t, domain.ClassSEP)
	cast := schema.Cast(map[string]any{
		"sep":      "42",
		"release":  2.5,
		"author":   7,
		"created":  "2024-01-15",
		"updated":  "2024-01-16T10:30:00Z",
		"requires": []any{1, 2},
		"extra":    "kept",
	})

	if cast["sep"] != 42 {
		t.Fatalf("expected sep 42, got %#v", cast["sep"])
	}
	if cast["release"] != "2.5" {
		t.Fatalf("expected release \"2.5\", got %#v", cast["release"])
	}
	if cast["author"] != "7" {
		t.Fatalf("expected author \"7\", got %#v", cast["author"])
	}
	created, ok := cast["created"].(time.Time)
	if !ok || !created.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created %#v", cast["created"])
	}
	if _, ok := cast["updated"].(time.Time); !ok {
		t.Fatalf("expected updated to be a time, got %#v", cast["updated"])
	}
	if requires, ok := cast["requires"].([]any); !ok || len(requires) != 2 {
		t.Fatalf("expected requires untouched, got %#v", cast["requires"])
	}
	if cast["extra"] != "kept" {
		t.Fatalf("expected unknown key kept, got %#v", cast["extra"])
	}
}

func TestCastDoesNotMutateInput(t *testing.T) {
	schema := newTestSchema(t, domain.ClassSEP)
	record := map[string]any{"sep": "3"}
	_ = schema.Cast(record)
	if record["sep"] != "3" {
		t.Fatalf("expected input untouched, got %#v", record["sep"])
	}
}

func TestNewSchemaRejectsUnknownClass(t *testing.T) {
	if _, err := NewSchema(domain.DocumentClass("rfc"), domain.NewStatusSet(domain.DefaultStatuses...)); err == nil {
		t.Fatal("expected unknown class error")
	}
}

func TestSchemaFieldsOverrideNetwork(t *testing.T) {
	schema := newTestSchema(t, domain.ClassSEP)
	field, ok := schema.Field("network")
	if !ok {
		t.Fatal("expected network field")
	}
	if len(field.OneOf) != 0 || !field.Required {
		t.Fatalf("expected open required network, got %+v", field)
	}
	count := 0
	for _, f := range schema.Fields() {
		if f.Name == "network" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected a single network field, got %d", count)
	}
}

func TestDetailsExtractsValueAndMessages(t *testing.T) {
	schema := newTestSchema(t, domain.ClassSEP)
	record := validSEP()
	delete(record, "title")

	_, err := schema.CastAndValidate(record)
	value, messages, ok := Details(err)
	if !ok {
		t.Fatalf("expected details, got %v", err)
	}
	if value["file"] != "content/seps/sep-1.md" {
		t.Fatalf("expected file in value, got %v", value)
	}
	if len(messages) != 1 || messages[0] != "title: required key is missing" {
		t.Fatalf("unexpected messages %v", messages)
	}

	if _, _, ok := Details(errors.New("plain")); ok {
		t.Fatal("expected plain errors to carry no details")
	}
}
