package handlers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/emr/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/kballard/go-shellquote"
)

var (
	planColorBlue  = lipgloss.Color("#3b82f6")
	planColorDim   = lipgloss.Color("#6b7280")
	planColorWhite = lipgloss.Color("#f9fafb")
	planColorAmber = lipgloss.Color("#f59e0b")
)

var (
	planTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(planColorWhite)

	planSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(planColorBlue)

	planDimStyle = lipgloss.NewStyle().
			Foreground(planColorDim)

	planWarnStyle = lipgloss.NewStyle().
			Foreground(planColorAmber)
)

// renderPlan produces a lipgloss-styled summary of the request.
func renderPlan(view *planView) string {
	in := view.Request
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(planTitleStyle.Render(fmt.Sprintf("  emrer plan: %s", aws.ToString(in.Name))))
	b.WriteString("\n")
	b.WriteString(planDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	renderPlanSection(&b, "Cluster")
	fmt.Fprintf(&b, "    %-14s %s\n", "Release:", aws.ToString(in.ReleaseLabel))
	if inst := in.Instances; inst != nil {
		fmt.Fprintf(&b, "    %-14s %d (master %s, core %s)\n", "Instances:",
			aws.ToInt32(inst.InstanceCount),
			orDash(aws.ToString(inst.MasterInstanceType)),
			orDash(aws.ToString(inst.SlaveInstanceType)))
		if aws.ToBool(inst.KeepJobFlowAliveWhenNoSteps) {
			fmt.Fprintf(&b, "    %-14s %s\n", "Keep alive:", "yes")
		}
	}
	if len(in.Applications) > 0 {
		names := make([]string, 0, len(in.Applications))
		for _, app := range in.Applications {
			names = append(names, aws.ToString(app.Name))
		}
		fmt.Fprintf(&b, "    %-14s %s\n", "Applications:", strings.Join(names, ", "))
	}
	fmt.Fprintf(&b, "    %-14s %s\n", "Log URI:", orDash(aws.ToString(in.LogUri)))
	fmt.Fprintf(&b, "    %-14s %s / %s\n", "Roles:", orDash(aws.ToString(in.JobFlowRole)), orDash(aws.ToString(in.ServiceRole)))

	if len(view.Uploads) > 0 {
		b.WriteString("\n")
		renderPlanSection(&b, fmt.Sprintf("Uploads (%d)", len(view.Uploads)))
		for _, up := range view.Uploads {
			fmt.Fprintf(&b, "    %s → %s\n", up.LocalPath, up.URI)
		}
	}

	if len(in.BootstrapActions) > 0 {
		b.WriteString("\n")
		renderPlanSection(&b, fmt.Sprintf("Bootstrap Actions (%d)", len(in.BootstrapActions)))
		for i, action := range in.BootstrapActions {
			fmt.Fprintf(&b, "    %d. %s\n", i+1, aws.ToString(action.Name))
			if sba := action.ScriptBootstrapAction; sba != nil {
				b.WriteString(planDimStyle.Render("       " + commandLine(aws.ToString(sba.Path), sba.Args)))
				b.WriteString("\n")
			}
		}
	}

	if len(in.Steps) > 0 {
		b.WriteString("\n")
		renderPlanSection(&b, fmt.Sprintf("Steps (%d)", len(in.Steps)))
		for i, step := range in.Steps {
			fmt.Fprintf(&b, "    %d. %s %s\n", i+1, aws.ToString(step.Name), formatOnFailure(step.ActionOnFailure))
			if jar := step.HadoopJarStep; jar != nil {
				b.WriteString(planDimStyle.Render("       " + commandLine(aws.ToString(jar.Jar), jar.Args)))
				b.WriteString("\n")
			}
		}
	}

	if len(in.Configurations) > 0 {
		b.WriteString("\n")
		renderPlanSection(&b, fmt.Sprintf("Configurations (%d)", len(in.Configurations)))
		for _, c := range in.Configurations {
			renderConfiguration(&b, c, "    ")
		}
	}

	if len(in.Tags) > 0 {
		b.WriteString("\n")
		renderPlanSection(&b, "Tags")
		for _, tag := range in.Tags {
			fmt.Fprintf(&b, "    %s=%s\n", aws.ToString(tag.Key), aws.ToString(tag.Value))
		}
	}

	return b.String()
}

func renderPlanSection(b *strings.Builder, title string) {
	b.WriteString(planSectionStyle.Render("  " + title))
	b.WriteString("\n")
	b.WriteString(planDimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")
}

func renderConfiguration(b *strings.Builder, c types.Configuration, indent string) {
	fmt.Fprintf(b, "%s%s (%d properties)\n", indent, orDash(aws.ToString(c.Classification)), len(c.Properties))

	keys := make([]string, 0, len(c.Properties))
	for k := range c.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(planDimStyle.Render(fmt.Sprintf("%s  %s = %s", indent, k, c.Properties[k])))
		b.WriteString("\n")
	}

	for _, nested := range c.Configurations {
		renderConfiguration(b, nested, indent+"  ")
	}
}

// commandLine renders a target and its arguments the way a shell would
// need them quoted.
func commandLine(target string, args []string) string {
	return shellquote.Join(append([]string{target}, args...)...)
}

func formatOnFailure(action types.ActionOnFailure) string {
	if action == types.ActionOnFailureContinue {
		return planDimStyle.Render("[" + string(action) + "]")
	}
	return planWarnStyle.Render("[" + string(action) + "]")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
