// Package wizard implements the interactive `jacoscope init` flow.
package wizard

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"jacoscope/internal/infrastructure/config"
)

const maxWorkers = 32

// mavenAggregate is the Maven-layout report path toggled by the wizard.
const mavenAggregate = "target/site/jacoco/jacoco.xml"

type wizardState int

const (
	stateIntro wizardState = iota
	stateEdit
	stateConfirm
)

type initWizardModel struct {
	state     wizardState
	cfg       config.Config
	cursor    int
	maven     bool
	confirmed bool
	aborted   bool
}

// Run walks the user through the settings and returns the resulting
// config plus whether it was confirmed.
func Run(cfg config.Config, stdout io.Writer, stdin io.Reader) (config.Config, bool, error) {
	model := newInitWizardModel(cfg)
	program := tea.NewProgram(model, tea.WithInput(stdin), tea.WithOutput(stdout))
	res, err := program.Run()
	if err != nil {
		return cfg, false, err
	}
	finalModel, ok := res.(*initWizardModel)
	if !ok {
		return cfg, false, fmt.Errorf("unexpected wizard state")
	}
	if finalModel.aborted || !finalModel.confirmed {
		return cfg, false, nil
	}
	return finalModel.toConfig(), true, nil
}

func newInitWizardModel(cfg config.Config) *initWizardModel {
	maven := false
	for _, p := range cfg.RootReports {
		if p == mavenAggregate {
			maven = true
		}
	}
	return &initWizardModel{state: stateIntro, cfg: cfg, maven: maven}
}

func (m *initWizardModel) Init() tea.Cmd {
	return nil
}

func (m *initWizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.aborted = true
		return m, tea.Quit
	case "enter":
		switch m.state {
		case stateIntro:
			m.state = stateEdit
		case stateEdit:
			m.state = stateConfirm
		case stateConfirm:
			m.confirmed = true
			return m, tea.Quit
		}
	case "esc":
		if m.state == stateConfirm {
			m.state = stateEdit
		}
	case "up":
		if m.state == stateEdit && m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.state == stateEdit && m.cursor < 1 {
			m.cursor++
		}
	case "left":
		if m.state == stateEdit && m.cursor == 0 && m.cfg.Workers > 0 {
			m.cfg.Workers--
		}
	case "right":
		if m.state == stateEdit && m.cursor == 0 && m.cfg.Workers < maxWorkers {
			m.cfg.Workers++
		}
	case " ":
		if m.state == stateEdit && m.cursor == 1 {
			m.maven = !m.maven
		}
	}
	return m, nil
}

func (m *initWizardModel) View() string {
	var b strings.Builder

	switch m.state {
	case stateIntro:
		b.WriteString("jacoscope init\n\n")
		b.WriteString("This wizard writes a .jacoscope.yaml with report discovery and\n")
		b.WriteString("aggregation settings.\n\n")
		b.WriteString("[enter] continue  [q] abort\n")
	case stateEdit:
		b.WriteString("Settings\n\n")
		b.WriteString(fmt.Sprintf("%s workers: %s  (left/right to adjust)\n", marker(m.cursor == 0), workersLabel(m.cfg.Workers)))
		b.WriteString(fmt.Sprintf("%s probe Maven layout (%s): %v  (space to toggle)\n", marker(m.cursor == 1), mavenAggregate, m.maven))
		b.WriteString("\nreport name: " + m.cfg.ReportName + "\n")
		b.WriteString("standards file: " + m.cfg.StandardsFile + "\n")
		b.WriteString("\n[enter] review  [q] abort\n")
	case stateConfirm:
		b.WriteString("Write this configuration?\n\n")
		b.WriteString(fmt.Sprintf("  workers: %s\n", workersLabel(m.cfg.Workers)))
		b.WriteString(fmt.Sprintf("  maven layout: %v\n", m.maven))
		b.WriteString("\n[enter] write  [esc] back  [q] abort\n")
	}
	return b.String()
}

func (m *initWizardModel) toConfig() config.Config {
	cfg := m.cfg
	cfg.RootReports = withoutPath(cfg.RootReports, mavenAggregate)
	if m.maven {
		cfg.RootReports = append(cfg.RootReports, mavenAggregate)
	}
	return cfg
}

func marker(selected bool) string {
	if selected {
		return ">"
	}
	return " "
}

func workersLabel(n int) string {
	if n == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", n)
}

func withoutPath(paths []string, drop string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != drop {
			out = append(out, p)
		}
	}
	return out
}
