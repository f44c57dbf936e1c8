package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	warnStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stepActiveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	stepPendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	toastInfoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	toastErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	toastOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func statusStyle(status string) lipgloss.Style {
	switch status {
	case "completed", "ready_for_export":
		return okStyle
	case "failed":
		return errorStyle
	case "cancelled":
		return mutedStyle
	case "planned":
		return warnStyle
	default:
		return toastInfoStyle
	}
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

func listWindow(total, cursor, maxRows int) (int, int) {
	if total <= maxRows {
		return 0, total
	}
	half := maxRows / 2
	start := cursor - half
	if start < 0 {
		start = 0
	}
	end := start + maxRows
	if end > total {
		end = total
		start = end - maxRows
	}
	return start, end
}
