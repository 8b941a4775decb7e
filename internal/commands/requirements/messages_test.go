package requirementscmd

import "testing"

func TestCreateRequirementCommandValidateRequiresTitle(t *testing.T) {
	cmd := CreateRequirementCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when title missing")
	}

	cmd.Title = "   "
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when title blank")
	}

	cmd.Title = "Login"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when title provided: %v", err)
	}
}

func TestCreateRequirementCommandValidateSingleLine(t *testing.T) {
	cmd := CreateRequirementCommand{Title: "Login\nLogout"}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error for multi-line title")
	}

	cmd = CreateRequirementCommand{Title: "Login", Context: "Auth\nSessions"}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error for multi-line context")
	}

	cmd.Context = ""
	if err := cmd.Validate(); err != nil {
		t.Fatalf("expected empty context to be accepted: %v", err)
	}
}

func TestPreviewIndexCommandValidateExtensions(t *testing.T) {
	cmd := PreviewIndexCommand{Extensions: []string{"table", "Linkify"}}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error for known extensions: %v", err)
	}

	cmd.Extensions = append(cmd.Extensions, "mermaid")
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error for unknown extension")
	}
}

func TestPreviewIndexCommandOutputTarget(t *testing.T) {
	if !(PreviewIndexCommand{}).toStdout() {
		t.Fatal("expected empty output to target stdout")
	}
	if !(PreviewIndexCommand{Output: StdoutOutput}).toStdout() {
		t.Fatal("expected dash output to target stdout")
	}
	if (PreviewIndexCommand{Output: "index.html"}).toStdout() {
		t.Fatal("expected file output")
	}
}

func TestMessageTypes(t *testing.T) {
	cases := map[string]string{
		CreateRequirementCommand{}.Type(): "reqdocs.requirements.create",
		UpdateIndexCommand{}.Type():       "reqdocs.requirements.update_index",
		ListRequirementsCommand{}.Type():  "reqdocs.requirements.list",
		PreviewIndexCommand{}.Type():      "reqdocs.requirements.preview",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("expected message type %q, got %q", want, got)
		}
	}
}
