// Command standings is a terminal scoreboard viewer. It polls the
// backend's scoreboard endpoint and redraws the table on an interval.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type scoreboardResponse struct {
	Status string   `json:"status"`
	Data   [][]cell `json:"data"`
	ErrMsg string   `json:"message"`
}

type fetchedMsg struct {
	rows [][]cell
	err  error
}

type tickMsg time.Time

type model struct {
	url      string
	interval time.Duration

	rows      [][]cell
	err       error
	fetchedAt time.Time
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m model) Init() tea.Cmd {
	return fetchCmd(m.url)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, fetchCmd(m.url)
		}
	case fetchedMsg:
		m.rows = msg.rows
		m.err = msg.err
		m.fetchedAt = time.Now()
		return m, tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
	case tickMsg:
		return m, fetchCmd(m.url)
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(fmt.Sprintf("error: %v\n", m.err))
	} else if len(m.rows) == 0 {
		b.WriteString("loading scoreboard...\n")
	} else {
		widths := columnWidths(m.rows)
		for i, row := range m.rows {
			line := renderRow(row, widths)
			if i == 0 {
				line = headerStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if !m.fetchedAt.IsZero() {
		b.WriteString(dimStyle.Render(
			fmt.Sprintf("\nupdated %s · r to refresh · q to quit\n",
				m.fetchedAt.Format("15:04:05"))))
	}
	return b.String()
}

func columnWidths(rows [][]cell) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, c := range row {
			if i < len(widths) && len(c.Value) > widths[i] {
				widths[i] = len(c.Value)
			}
		}
	}
	return widths
}

func renderRow(row []cell, widths []int) string {
	parts := make([]string, 0, len(row))
	for i, c := range row {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		parts = append(parts, fmt.Sprintf("%-*s", w, c.Value))
	}
	return strings.Join(parts, "  ")
}

func fetchCmd(url string) tea.Cmd {
	return func() tea.Msg {
		resp, err := http.Get(url)
		if err != nil {
			return fetchedMsg{err: err}
		}
		defer resp.Body.Close()

		var parsed scoreboardResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return fetchedMsg{err: err}
		}
		if parsed.Status != "success" {
			return fetchedMsg{err: fmt.Errorf("backend: %s", parsed.ErrMsg)}
		}
		return fetchedMsg{rows: parsed.Data}
	}
}

func main() {
	apiUrl := flag.String("url", "http://localhost:8080", "backend base URL")
	contestId := flag.String("contest", "", "contest id")
	domain := flag.String("domain", "main", "contest domain")
	interval := flag.Duration("interval", 15*time.Second, "refresh interval")
	flag.Parse()

	if *contestId == "" {
		fmt.Println("usage: standings -contest <id> [-domain main] [-url http://localhost:8080]")
		return
	}

	url := fmt.Sprintf("%s/contests/%s/scoreboard?domain=%s", *apiUrl, *contestId, *domain)
	m := model{url: url, interval: *interval}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Printf("standings viewer failed: %v\n", err)
	}
}
