package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.showFavorites {
		return a.viewFavorites()
	}

	contentHeight := a.height - 1 // status bar
	if a.errMsg != "" {
		contentHeight--
	}
	if a.showHelp {
		contentHeight -= 4
	}

	var b strings.Builder
	b.WriteString(lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Center, a.renderQuote()))

	if a.showHelp {
		b.WriteString(a.styles.Help.Render(helpText))
		b.WriteString("\n")
	}
	if a.errMsg != "" {
		b.WriteString(a.styles.Error.Width(a.width).Render(a.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(a.renderStatusBar())

	return b.String()
}

const helpText = "t today's quote · r random quote · f favorite · v favorites\nd toggle theme · ? help · q quit"

// renderQuote renders the central quote card.
func (a App) renderQuote() string {
	if !a.haveQuote {
		if a.errMsg != "" {
			return a.styles.QuoteText.Render("No quote loaded — press t for today's quote.")
		}
		return a.spin.View() + " fetching a quote..."
	}

	maxWidth := a.width - 8
	if maxWidth > 72 {
		maxWidth = 72
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	mark := a.styles.QuoteMark.Render("“")
	text := a.styles.QuoteText.Width(maxWidth).Render(a.current.Text)
	author := a.styles.Author.Render("— " + a.current.Author)

	card := lipgloss.JoinVertical(lipgloss.Left, mark, text, "", author)
	if a.favorite {
		card = lipgloss.JoinVertical(lipgloss.Left, card, "", a.styles.Favorite.Render("♥ favorite"))
	}
	if a.loading {
		card = lipgloss.JoinVertical(lipgloss.Left, card, "", a.spin.View())
	}
	return card
}

// renderStatusBar renders the bottom bar with key hints and the visit count.
func (a App) renderStatusBar() string {
	hints := fmt.Sprintf("%s today  %s random  %s fav  %s list  %s theme  %s quit",
		a.styles.StatusKey.Render("t"),
		a.styles.StatusKey.Render("r"),
		a.styles.StatusKey.Render("f"),
		a.styles.StatusKey.Render("v"),
		a.styles.StatusKey.Render("d"),
		a.styles.StatusKey.Render("q"))

	days := a.styles.StatusText.Render(fmt.Sprintf("  day %d", a.visitDays))
	return a.styles.StatusBar.Width(a.width).Render(hints + days)
}

// viewFavorites renders the favorites list view.
func (a App) viewFavorites() string {
	var b strings.Builder
	b.WriteString(a.styles.ListTitle.Render(fmt.Sprintf("Favorites (%d)", len(a.favorites))))
	b.WriteString("\n\n")

	if len(a.favorites) == 0 {
		b.WriteString(a.styles.ListItem.Render("Nothing here yet — press f on a quote you like."))
		b.WriteString("\n")
	}

	visible := a.height - 5
	if visible < 1 {
		visible = 1
	}
	start := 0
	if a.favCursor >= visible {
		start = a.favCursor - visible + 1
	}
	end := start + visible
	if end > len(a.favorites) {
		end = len(a.favorites)
	}

	for i := start; i < end; i++ {
		f := a.favorites[i]
		line := fmt.Sprintf("%s — %s", truncate(f.Text, a.width-utf8.RuneCountInString(f.Author)-10), f.Author)
		if i == a.favCursor {
			b.WriteString(a.styles.ListCursor.Render(line))
		} else {
			b.WriteString(a.styles.ListItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("j/k move · f remove · esc back · q quit"))
	return b.String()
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
