package main

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/cmd/gjcli/storage"
	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"
)

func (o *Operator) renderUsers(users []gamejolt.UserRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(o.out)
	t.AppendHeader(table.Row{"ID", "Username", "Type", "Status", "Signed Up", "Last Login", "Developer"})
	t.AppendSeparator()

	for _, user := range users {
		t.AppendRow(table.Row{
			user.ID,
			user.Username,
			user.Type,
			user.Status,
			user.SignedUp,
			user.LastLoggedIn,
			user.DisplayName,
		})
	}
	t.Render()
}

func (o *Operator) renderTrophies(trophies []gamejolt.TrophyRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(o.out)
	t.AppendHeader(table.Row{"ID", "Title", "Difficulty", "Achieved", "Description"})
	t.AppendSeparator()

	for _, trophy := range trophies {
		achieved := "no"
		if trophy.IsAchieved() {
			achieved = trophy.Achieved
		}
		t.AppendRow(table.Row{trophy.ID, trophy.Title, trophy.Difficulty, achieved, trophy.Description})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: 48},
	})
	t.Render()
}

func (o *Operator) renderHistory(events []storage.TrophyEventDTO) {
	t := table.NewWriter()
	t.SetOutputMirror(o.out)
	t.AppendHeader(table.Row{"When", "Username", "Trophy", "Event"})
	t.AppendSeparator()

	for _, event := range events {
		t.AppendRow(table.Row{event.CreatedAt.Local().Format(time.RFC3339), event.Username, event.TrophyID, event.Kind})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, AutoMerge: true},
	})
	t.Render()
}
