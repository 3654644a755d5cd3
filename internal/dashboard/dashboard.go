// Package dashboard builds the per-role view payloads. Presenters only
// render: they receive the current identity, read through the directory
// gateway and monitor service, and never touch the session store.
package dashboard

import (
	"context"
	"fmt"

	"gradportal/internal/directory"
	"gradportal/internal/identity"
	"gradportal/internal/monitor"
	"gradportal/internal/portal"
)

// Card is a single stat card on a dashboard.
type Card struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Note  string `json:"note,omitempty"`
}

// Payload is what a presenter hands to the client for rendering.
type Payload struct {
	View     portal.View       `json:"view"`
	Greeting string            `json:"greeting"`
	Identity identity.Identity `json:"identity"`
	Cards    []Card            `json:"cards"`
	Users    []directory.User  `json:"users,omitempty"`
	Overview *monitor.Overview `json:"overview,omitempty"`
}

// Presenter builds the payload for one dashboard view.
type Presenter func(ctx context.Context, id identity.Identity) (Payload, error)

// Registry dispatches a view to its presenter. The constructor covers the
// closed view set; an unknown view at Present time is a caller bug.
type Registry struct {
	presenters map[portal.View]Presenter
}

// NewRegistry wires one presenter per dashboard view.
func NewRegistry(dir *directory.Service, mon *monitor.Service, userLimit int) *Registry {
	r := &Registry{presenters: make(map[portal.View]Presenter)}
	r.presenters[portal.ViewStudent] = staticPresenter(portal.ViewStudent, studentCards)
	r.presenters[portal.ViewFaculty] = staticPresenter(portal.ViewFaculty, facultyCards)
	r.presenters[portal.ViewFinance] = staticPresenter(portal.ViewFinance, financeCards)
	r.presenters[portal.ViewAdministration] = staticPresenter(portal.ViewAdministration, administrationCards)
	r.presenters[portal.ViewAdmin] = adminPresenter(dir, mon, userLimit)
	return r
}

// Present builds the payload for the given view. ok is false when the
// view has no presenter (login and role-select render client side).
func (r *Registry) Present(ctx context.Context, view portal.View, id identity.Identity) (Payload, bool, error) {
	p, ok := r.presenters[view]
	if !ok {
		return Payload{}, false, nil
	}
	payload, err := p(ctx, id)
	return payload, true, err
}

func greeting(id identity.Identity) string {
	return fmt.Sprintf("Welcome, %s", id.Name)
}

func staticPresenter(view portal.View, cards []Card) Presenter {
	return func(_ context.Context, id identity.Identity) (Payload, error) {
		return Payload{
			View:     view,
			Greeting: greeting(id),
			Identity: id,
			Cards:    cards,
		}, nil
	}
}

// adminPresenter pulls the live user directory and the metric overview.
// A users read failure is the one error surfaced to the viewer; metric
// gaps degrade inside the overview itself.
func adminPresenter(dir *directory.Service, mon *monitor.Service, userLimit int) Presenter {
	return func(ctx context.Context, id identity.Identity) (Payload, error) {
		users, err := dir.ListUsers(ctx, userLimit)
		if err != nil {
			return Payload{}, err
		}
		ov := mon.Overview(ctx)
		return Payload{
			View:     portal.ViewAdmin,
			Greeting: greeting(id),
			Identity: id,
			Cards:    adminCards(len(users), ov),
			Users:    users,
			Overview: &ov,
		}, nil
	}
}

func adminCards(userCount int, ov monitor.Overview) []Card {
	cards := []Card{{Title: "Total Users", Value: fmt.Sprintf("%d", userCount), Note: "Active accounts"}}

	health := Card{Title: "System Health", Value: "N/A", Note: "Uptime"}
	if ov.Health != nil {
		health.Value = fmt.Sprintf("%.1f%%", ov.Health.UptimePercent)
	}
	cards = append(cards, health)

	cards = append(cards, Card{
		Title: "Security Alerts",
		Value: fmt.Sprintf("%d", len(ov.Alerts)),
		Note:  "Require attention",
	})

	usage := Card{Title: "Database", Value: "N/A", Note: "Storage used"}
	if ov.Usage != nil {
		usage.Value = fmt.Sprintf("%.1fGB", ov.Usage.StorageUsedGB)
	}
	cards = append(cards, usage)

	backup := Card{Title: "Backup Status", Value: "N/A"}
	if ov.Backup != nil {
		backup.Value = ov.Backup.Status
		if ov.Backup.LastBackup != nil {
			backup.Note = "Last: " + ov.Backup.LastBackup.Format("Jan 2 15:04")
		}
	}
	cards = append(cards, backup)

	return cards
}

// Static card sets carried over from the original dashboards.

var studentCards = []Card{
	{Title: "Application Status", Value: "Under Review", Note: "Submitted March 15"},
	{Title: "Completion", Value: "75%", Note: "3 of 4 steps complete"},
	{Title: "Graduation Fee", Value: "$350", Note: "Payment pending"},
	{Title: "Ceremony Date", Value: "May 15, 2024", Note: "Main auditorium"},
}

var facultyCards = []Card{
	{Title: "Pending Reviews", Value: "12", Note: "Awaiting your approval"},
	{Title: "Approved", Value: "45", Note: "This semester"},
	{Title: "Requires Action", Value: "3", Note: "Missing documents"},
	{Title: "Total Students", Value: "187", Note: "In your department"},
}

var financeCards = []Card{
	{Title: "Total Revenue", Value: "$64,750", Note: "Graduation fees collected"},
	{Title: "Pending Payments", Value: "$8,750", Note: "25 students"},
	{Title: "Overdue", Value: "$1,750", Note: "5 students"},
	{Title: "Payment Rate", Value: "88%", Note: "On-time payments"},
}

var administrationCards = []Card{
	{Title: "Ceremony Planning", Value: "75%", Note: "On schedule"},
	{Title: "Graduates", Value: "432", Note: "Confirmed for May"},
	{Title: "Venues Booked", Value: "3", Note: "All confirmed"},
	{Title: "Pending Tasks", Value: "8", Note: "Due this week"},
}
