package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/subpair/habit-tracker/internal/constants"
	"github.com/subpair/habit-tracker/internal/models"
	"github.com/subpair/habit-tracker/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("240"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// messageError is printed whenever the storage layer failed an operation.
// Local file errors are not expected to be transient, so nothing retries.
const messageError = "An unknown error occurred. Please copy the previous output and send it to the developer."

// PeriodicityName renders a day count as its cadence name.
func PeriodicityName(days int) string {
	switch days {
	case constants.PeriodicityDaily:
		return "daily"
	case constants.PeriodicityWeekly:
		return "weekly"
	default:
		return fmt.Sprintf("every %d days", days)
	}
}

// PeriodicityUnit renders the streak unit for a cadence ("days in a row").
func PeriodicityUnit(days int) string {
	switch days {
	case constants.PeriodicityDaily:
		return "days"
	case constants.PeriodicityWeekly:
		return "weeks"
	default:
		return "periods"
	}
}

// PeriodicityDays maps a cadence name back to its day count. Returns 0 for
// unknown names.
func PeriodicityDays(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "daily":
		return constants.PeriodicityDaily
	case "weekly":
		return constants.PeriodicityWeekly
	default:
		return 0
	}
}

// OutcomeName renders an event outcome the way the dialogs phrase it.
func OutcomeName(completed bool) string {
	if completed {
		return "successful"
	}
	return "failed"
}

// FormatHabitTable renders habits in the tabular listing used by the
// analyse views.
func FormatHabitTable(habits []models.Habit) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-22s%-32s%-13s%-11s%-12s%-12s",
		"Name", "Description", "Periodicity", "Def. time", "Start date", "Due date")))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", 100))
	b.WriteString("\n")
	for _, h := range habits {
		b.WriteString(fmt.Sprintf("%-22s%-32s%-13s%-11d%-12s%-12s\n",
			h.Name, h.Description, PeriodicityName(h.Periodicity), h.DefaultTime,
			utils.FormatDate(h.CreatedDate), utils.FormatDate(h.NextDueDate)))
	}
	return b.String()
}

// FormatTimeSummary scales a minute total into minutes, hours or days for
// display.
func FormatTimeSummary(minutes int) string {
	switch {
	case minutes > constants.MaxTimeMinutes:
		return fmt.Sprintf("%.2f day/s", float64(minutes)/float64(constants.MaxTimeMinutes))
	case minutes > 60:
		return fmt.Sprintf("%.2f hour/s", float64(minutes)/60)
	default:
		return fmt.Sprintf("%d minute/s", minutes)
	}
}

func printTitle(s string) {
	fmt.Println(titleStyle.Render(s))
	fmt.Println(strings.Repeat("_", 100))
}
