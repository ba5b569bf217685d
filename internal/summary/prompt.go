package summary

import (
	"fmt"
	"strings"

	"dashboard/internal/models"
)

// DefaultInstruction is used when the caller does not supply a prompt.
const DefaultInstruction = "You are a project manager AI. Analyze the following project status, identify risks, summarize progress, and give a client-friendly update:"

const noTasks = "No tasks found."

// BuildContext renders a project and its tasks as plain text for the oracle.
func BuildContext(p models.Project, tasks []models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s (ID %d)\n", p.Name, p.ID)
	if p.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", p.Address)
	}
	if client := joinNonEmpty(", ", p.ClientName, p.ClientEmail, p.ClientPhone); client != "" {
		fmt.Fprintf(&b, "Client: %s\n", client)
	}
	if drawing := joinNonEmpty(" rev ", p.DrawingNumber, p.DrawingVersion); drawing != "" {
		fmt.Fprintf(&b, "Drawing: %s\n", drawing)
	}

	b.WriteString("\nTasks:\n")
	if len(tasks) == 0 {
		b.WriteString(noTasks)
		b.WriteString("\n")
		return b.String()
	}
	for _, t := range tasks {
		fmt.Fprintf(&b, "- %s (Role: %s, Status: %s", t.Name, t.Role, t.Status)
		if t.Who != "" {
			fmt.Fprintf(&b, ", Who: %s", t.Who)
		}
		if t.When != "" {
			fmt.Fprintf(&b, ", When: %s", t.When)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// BuildPrompt joins the instruction and the rendered project context.
func BuildPrompt(instruction string, p models.Project, tasks []models.Task) string {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		instruction = DefaultInstruction
	}
	return instruction + "\n\n" + BuildContext(p, tasks)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
