// Package prefs persists the two page preferences: the active tab and
// whether the sidebar is collapsed.
package prefs

import (
	"context"
	"strconv"
)

// Preference keys.
const (
	KeyActiveTab        = "activeTab"
	KeySidebarCollapsed = "sidebarCollapsed"
)

// Snapshot is the full preference state read at page initialization.
type Snapshot struct {
	ActiveTab        string `json:"activeTab"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

// Service reads and writes typed preferences through a Storage.
type Service struct {
	store Storage
}

// NewService wraps store.
func NewService(store Storage) *Service {
	return &Service{store: store}
}

// ActiveTab returns the stored tab fragment, or "" if none is stored.
func (s *Service) ActiveTab(ctx context.Context) (string, error) {
	v, _, err := s.store.Get(ctx, KeyActiveTab)
	return v, err
}

// SetActiveTab stores the tab fragment, such as "#error".
func (s *Service) SetActiveTab(ctx context.Context, tab string) error {
	return s.store.Set(ctx, KeyActiveTab, tab)
}

// SidebarCollapsed reports whether the sidebar was left collapsed. Only
// the stored string "true" means collapsed.
func (s *Service) SidebarCollapsed(ctx context.Context) (bool, error) {
	v, _, err := s.store.Get(ctx, KeySidebarCollapsed)
	return v == "true", err
}

// SetSidebarCollapsed stores "true" or "false".
func (s *Service) SetSidebarCollapsed(ctx context.Context, collapsed bool) error {
	return s.store.Set(ctx, KeySidebarCollapsed, strconv.FormatBool(collapsed))
}

// Load reads every preference once.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	tab, err := s.ActiveTab(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap.ActiveTab = tab

	collapsed, err := s.SidebarCollapsed(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap.SidebarCollapsed = collapsed
	return snap, nil
}
