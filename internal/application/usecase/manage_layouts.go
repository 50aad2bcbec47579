package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/domain/repository"
	"github.com/bnema/tabdock/internal/logging"
)

var (
	// ErrLayoutNotFound is returned when no layout is saved under a name.
	ErrLayoutNotFound = errors.New("layout not found")
	// ErrInvalidLayoutName is returned for blank names.
	ErrInvalidLayoutName = errors.New("layout name cannot be empty")
	// ErrEmptyLayout is returned when saving a nil layout.
	ErrEmptyLayout = errors.New("layout is empty")
)

// suggestionRatio is the largest edit distance, relative to the longer name,
// at which a saved name is offered as a suggestion.
const suggestionRatio = 0.4

// LayoutNotFoundError carries the closest saved name, if any.
type LayoutNotFoundError struct {
	Name       string
	Suggestion string
}

func (e *LayoutNotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("layout %q not found, did you mean %q?", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("layout %q not found", e.Name)
}

func (e *LayoutNotFoundError) Is(target error) bool {
	return target == ErrLayoutNotFound
}

// ManageLayoutsUseCase stores and retrieves named layouts.
type ManageLayoutsUseCase struct {
	repo repository.LayoutRepository
	now  func() time.Time
}

// NewManageLayoutsUseCase creates a new saved layouts use case.
func NewManageLayoutsUseCase(repo repository.LayoutRepository) *ManageLayoutsUseCase {
	return &ManageLayoutsUseCase{repo: repo, now: time.Now}
}

// Save stores layout under name, replacing any previous layout with that name.
func (uc *ManageLayoutsUseCase) Save(ctx context.Context, name string, layout *entity.LayoutBase) (*entity.SavedLayout, error) {
	log := logging.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidLayoutName
	}
	if layout == nil {
		return nil, ErrEmptyLayout
	}

	saved := &entity.SavedLayout{
		Name:       name,
		Layout:     layout,
		PanelCount: layout.CountPanels(),
		SavedAt:    uc.now().UTC(),
	}
	if err := uc.repo.Save(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save layout %q: %w", name, err)
	}

	log.Info().Str("layout", name).Int("panels", saved.PanelCount).Msg("layout saved")
	return saved, nil
}

// Get returns the layout saved under name. A missing layout yields a
// *LayoutNotFoundError matching ErrLayoutNotFound.
func (uc *ManageLayoutsUseCase) Get(ctx context.Context, name string) (*entity.SavedLayout, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("layout", name).Msg("loading layout")

	saved, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout %q: %w", name, err)
	}
	if saved == nil {
		return nil, uc.notFound(ctx, name)
	}
	return saved, nil
}

// List returns every saved layout, most recent first.
func (uc *ManageLayoutsUseCase) List(ctx context.Context) ([]*entity.SavedLayout, error) {
	layouts, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	return layouts, nil
}

// Delete removes the layout saved under name.
func (uc *ManageLayoutsUseCase) Delete(ctx context.Context, name string) error {
	log := logging.FromContext(ctx)

	existing, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load layout %q: %w", name, err)
	}
	if existing == nil {
		return uc.notFound(ctx, name)
	}
	if err := uc.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("failed to delete layout %q: %w", name, err)
	}

	log.Info().Str("layout", name).Msg("layout deleted")
	return nil
}

func (uc *ManageLayoutsUseCase) notFound(ctx context.Context, name string) error {
	nfErr := &LayoutNotFoundError{Name: name}
	layouts, err := uc.repo.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to list layouts for suggestion")
		return nfErr
	}
	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.Name
	}
	nfErr.Suggestion = ClosestName(name, names)
	return nfErr
}

// ClosestName returns the candidate nearest to name by case-insensitive edit
// distance, or "" when none is close enough. Earlier candidates win ties.
func ClosestName(name string, candidates []string) string {
	want := strings.ToLower(name)
	best, bestScore := "", 1.0
	for _, c := range candidates {
		longest := max(len(want), len(c))
		if longest == 0 {
			continue
		}
		score := float64(levenshtein.ComputeDistance(want, strings.ToLower(c))) / float64(longest)
		if score < bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore >= suggestionRatio {
		return ""
	}
	return best
}
