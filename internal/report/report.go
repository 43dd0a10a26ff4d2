package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/slp-results/internal/model"
)

var (
	cWin  = color.New(color.FgGreen, color.Bold)
	cLoss = color.New(color.FgRed)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// ShortHash returns the first 12 characters of a replay hash.
func ShortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// FormatDuration renders a frame count as m:ss at 60 fps.
func FormatDuration(frames int) string {
	if frames <= 0 {
		return "—"
	}
	secs := frames / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func mode(isTeams bool) string {
	if isTeams {
		return "Doubles"
	}
	return "Singles"
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// PrintOutcomeSummary prints a one-line summary header for the replay.
func PrintOutcomeSummary(w io.Writer, o model.MatchOutcome) {
	fmt.Fprintf(w, "\nStage: %s  |  Date: %s  |  Mode: %s  |  Length: %s  |  Hash: %s\n\n",
		orDash(o.StageString()), orDash(o.StartedAt), mode(o.IsTeams),
		FormatDuration(o.DurationFrames), ShortHash(o.ReplayHash))
}

// PrintPlayerTable prints the last-frame state of every player.
// If focusCode is non-empty, that player's row is marked with ">".
func PrintPlayerTable(w io.Writer, players []model.PlayerState, focusCode string) {
	table := newTable(w)
	table.Header(" ", "PORT", "CODE", "TAG", "CHARACTER", "TEAM", "STOCKS", "DAMAGE", "RESULT")

	for _, p := range players {
		marker := " "
		if focusCode != "" && p.Code == focusCode {
			marker = ">"
		}
		result := cLoss.Sprint("LOSS")
		if p.Winner {
			result = cWin.Sprint("WIN")
		}
		table.Append(
			marker,
			fmt.Sprintf("P%d", p.Slot+1),
			p.Code,
			p.Tag,
			orDash(p.CharacterString()),
			orDash(p.TeamString()),
			strconv.Itoa(int(p.Stocks)),
			fmt.Sprintf("%.1f%%", p.Damage),
			result,
		)
	}
	table.Render()
}

// PrintReplayList prints one row per stored replay.
func PrintReplayList(w io.Writer, outcomes []model.MatchOutcome) {
	table := newTable(w)
	table.Header("HASH", "DATE", "STAGE", "MODE", "LENGTH", "SOURCE")
	for _, o := range outcomes {
		table.Append(
			ShortHash(o.ReplayHash),
			orDash(o.StartedAt),
			orDash(o.StageString()),
			mode(o.IsTeams),
			FormatDuration(o.DurationFrames),
			orDash(o.SourcePath),
		)
	}
	table.Render()
}

// PrintPlayerRecords prints win/loss records, one row per code.
func PrintPlayerRecords(w io.Writer, records []model.PlayerRecord) {
	table := newTable(w)
	table.Header("CODE", "TAG", "GAMES", "W", "L", "WIN%")
	for _, r := range records {
		table.Append(
			r.Code,
			r.Tag,
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			fmt.Sprintf("%.0f%%", r.WinPct()),
		)
	}
	table.Render()
}

// PrintCharacterUsage prints per-character games and win rate.
func PrintCharacterUsage(w io.Writer, usage []model.CharacterUsage) {
	table := newTable(w)
	table.Header("CHARACTER", "GAMES", "W", "WIN%")
	for _, u := range usage {
		pct := 0.0
		if u.Games > 0 {
			pct = 100.0 * float64(u.Wins) / float64(u.Games)
		}
		table.Append(
			orDash(u.Character),
			strconv.Itoa(u.Games),
			strconv.Itoa(u.Wins),
			fmt.Sprintf("%.0f%%", pct),
		)
	}
	table.Render()
}

// PrintStageCounts prints replay counts per stage.
func PrintStageCounts(w io.Writer, stages []model.StageCount) {
	table := newTable(w)
	table.Header("STAGE", "GAMES")
	for _, s := range stages {
		table.Append(orDash(s.Stage), strconv.Itoa(s.Games))
	}
	table.Render()
}
