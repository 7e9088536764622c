package service

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/locale"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrEventSlugTaken = errors.New("event slug already in use")
	ErrTitleRequired  = errors.New("norwegian title is required")
	ErrDateOrder      = errors.New("event date ends before it starts")
)

// EventService wraps event related database operations.
type EventService struct {
	db *gorm.DB
}

// EventFilter narrows the public program. Empty fields are unset;
// values are validated by the caller before they get here.
type EventFilter struct {
	Day        string
	VenueSlug  string
	ArtistSlug string
	Language   string
}

// ProgramEntry is one performance on the public program.
type ProgramEntry struct {
	EventID   uint
	Slug      string
	Title     string
	VenueName string
	VenueSlug string
	Artists   []string
	StartsAt  time.Time
	EndsAt    time.Time
	TicketURL string
	PriceText string
}

// ProgramDay groups a day's performances, ordered by start time.
type ProgramDay struct {
	Date    string
	Label   string
	Entries []ProgramEntry
}

// EventDateInput is one performance when saving an event.
type EventDateInput struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// EventInput represents fields accepted when creating or updating an
// event.
type EventInput struct {
	Slug          string
	TitleNO       string
	TitleEN       string
	DescriptionNO string
	DescriptionEN string
	Status        string
	TicketURL     string
	PriceTextNO   string
	PriceTextEN   string
	VenueID       uint
	ArtistIDs     []uint
	Dates         []EventDateInput
}

// NewEventService creates an EventService instance.
func NewEventService(gdb *gorm.DB) *EventService {
	return &EventService{db: gdb}
}

// ListAll returns every event for the studio, newest first.
func (s *EventService) ListAll() ([]db.Event, error) {
	var events []db.Event
	if err := s.db.Preload("Venue").Preload("Artists").Preload("Dates").
		Order("created_at desc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Get fetches an event by id with associations preloaded.
func (s *EventService) Get(id uint) (*db.Event, error) {
	var event db.Event
	if err := s.db.Preload("Venue").Preload("Artists").Preload("Dates").
		First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetPublishedBySlug fetches a published event for the public site.
func (s *EventService) GetPublishedBySlug(slug string) (*db.Event, error) {
	var event db.Event
	if err := s.db.Preload("Venue").Preload("Artists").Preload("Dates").
		Where("slug = ? AND status = ?", slug, "published").
		First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Create persists an event with its dates and artist associations.
func (s *EventService) Create(input EventInput) (*db.Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := db.Event{
		Slug:          strings.TrimSpace(input.Slug),
		TitleNO:       strings.TrimSpace(input.TitleNO),
		TitleEN:       strings.TrimSpace(input.TitleEN),
		DescriptionNO: input.DescriptionNO,
		DescriptionEN: input.DescriptionEN,
		Status:        normalizeStatus(input.Status),
		TicketURL:     strings.TrimSpace(input.TicketURL),
		PriceTextNO:   strings.TrimSpace(input.PriceTextNO),
		PriceTextEN:   strings.TrimSpace(input.PriceTextEN),
		VenueID:       input.VenueID,
	}
	for _, date := range input.Dates {
		event.Dates = append(event.Dates, db.EventDate{StartsAt: date.StartsAt, EndsAt: date.EndsAt})
	}

	return s.saveWithArtists(&event, input.ArtistIDs)
}

// Update applies updates to an existing event. Dates are replaced
// wholesale; the studio always submits the full list.
func (s *EventService) Update(id uint, input EventInput) (*db.Event, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	event.Slug = strings.TrimSpace(input.Slug)
	event.TitleNO = strings.TrimSpace(input.TitleNO)
	event.TitleEN = strings.TrimSpace(input.TitleEN)
	event.DescriptionNO = input.DescriptionNO
	event.DescriptionEN = input.DescriptionEN
	event.Status = normalizeStatus(input.Status)
	event.TicketURL = strings.TrimSpace(input.TicketURL)
	event.PriceTextNO = strings.TrimSpace(input.PriceTextNO)
	event.PriceTextEN = strings.TrimSpace(input.PriceTextEN)
	event.VenueID = input.VenueID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&db.EventDate{}).Error; err != nil {
			return err
		}
		event.Dates = nil
		for _, date := range input.Dates {
			event.Dates = append(event.Dates, db.EventDate{EventID: event.ID, StartsAt: date.StartsAt, EndsAt: date.EndsAt})
		}
		if err := tx.Save(event).Error; err != nil {
			return translateSlugError(err, ErrEventSlugTaken)
		}

		var artists []db.Artist
		if len(input.ArtistIDs) > 0 {
			if err := tx.Find(&artists, input.ArtistIDs).Error; err != nil {
				return err
			}
		}
		return tx.Model(event).Association("Artists").Replace(artists)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete removes an event together with its dates and associations.
func (s *EventService) Delete(id uint) error {
	event, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(event).Association("Artists").Clear(); err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", event.ID).Delete(&db.EventDate{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
}

// CopyTranslation fills empty English fields from the Norwegian
// originals. Existing translations are never overwritten.
func (s *EventService) CopyTranslation(id uint) (*db.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	changed := false
	if strings.TrimSpace(event.TitleEN) == "" && event.TitleNO != "" {
		event.TitleEN = event.TitleNO
		changed = true
	}
	if strings.TrimSpace(event.DescriptionEN) == "" && event.DescriptionNO != "" {
		event.DescriptionEN = event.DescriptionNO
		changed = true
	}
	if strings.TrimSpace(event.PriceTextEN) == "" && event.PriceTextNO != "" {
		event.PriceTextEN = event.PriceTextNO
		changed = true
	}

	if !changed {
		return event, nil
	}
	if err := s.db.Model(event).Updates(map[string]any{
		"title_en":       event.TitleEN,
		"description_en": event.DescriptionEN,
		"price_text_en":  event.PriceTextEN,
	}).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Program expands published events into per-performance entries,
// applies the filter in memory and groups the result by day. The
// program is small (tens to low hundreds of performances), so a
// linear pass is plenty.
func (s *EventService) Program(filter EventFilter) ([]ProgramDay, error) {
	var events []db.Event
	if err := s.db.Preload("Venue").Preload("Artists").Preload("Dates").
		Where("status = ?", "published").Find(&events).Error; err != nil {
		return nil, err
	}

	var entries []ProgramEntry
	for _, event := range events {
		if filter.VenueSlug != "" && event.Venue.Slug != filter.VenueSlug {
			continue
		}
		if filter.ArtistSlug != "" && !hasArtist(event.Artists, filter.ArtistSlug) {
			continue
		}

		title := locale.Pick(filter.Language, event.TitleNO, event.TitleEN)
		venueName := locale.Pick(filter.Language, event.Venue.NameNO, event.Venue.NameEN)
		priceText := locale.Pick(filter.Language, event.PriceTextNO, event.PriceTextEN)
		artistNames := make([]string, 0, len(event.Artists))
		for _, artist := range event.Artists {
			artistNames = append(artistNames, artist.Name)
		}

		for _, date := range event.Dates {
			day := date.StartsAt.Format("2006-01-02")
			if filter.Day != "" && day != filter.Day {
				continue
			}
			entries = append(entries, ProgramEntry{
				EventID:   event.ID,
				Slug:      event.Slug,
				Title:     title,
				VenueName: venueName,
				VenueSlug: event.Venue.Slug,
				Artists:   artistNames,
				StartsAt:  date.StartsAt,
				EndsAt:    date.EndsAt,
				TicketURL: event.TicketURL,
				PriceText: priceText,
			})
		}
	}

	slices.SortFunc(entries, func(a, b ProgramEntry) int {
		if c := a.StartsAt.Compare(b.StartsAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})

	var days []ProgramDay
	for _, entry := range entries {
		date := entry.StartsAt.Format("2006-01-02")
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, ProgramDay{
				Date:  date,
				Label: DayLabel(entry.StartsAt, filter.Language),
			})
		}
		days[len(days)-1].Entries = append(days[len(days)-1].Entries, entry)
	}

	return days, nil
}

// ProgramDays lists the distinct days with published performances,
// used to build the day filter bar.
func (s *EventService) ProgramDays(language string) ([]ProgramDay, error) {
	days, err := s.Program(EventFilter{Language: language})
	if err != nil {
		return nil, err
	}
	for i := range days {
		days[i].Entries = nil
	}
	return days, nil
}

func (s *EventService) saveWithArtists(event *db.Event, artistIDs []uint) (*db.Event, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return translateSlugError(err, ErrEventSlugTaken)
		}
		if len(artistIDs) == 0 {
			return nil
		}
		var artists []db.Artist
		if err := tx.Find(&artists, artistIDs).Error; err != nil {
			return err
		}
		return tx.Model(event).Association("Artists").Replace(artists)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(event.ID)
}

func validateEventInput(input EventInput) error {
	if strings.TrimSpace(input.TitleNO) == "" {
		return ErrTitleRequired
	}
	for _, date := range input.Dates {
		if !date.EndsAt.IsZero() && date.EndsAt.Before(date.StartsAt) {
			return ErrDateOrder
		}
	}
	return nil
}

func hasArtist(artists []db.Artist, slug string) bool {
	for _, artist := range artists {
		if artist.Slug == slug {
			return true
		}
	}
	return false
}

func normalizeStatus(status string) string {
	if strings.TrimSpace(status) == "published" {
		return "published"
	}
	return "draft"
}

func translateSlugError(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique") {
		return sentinel
	}
	return err
}

var norwegianWeekdays = [...]string{"søndag", "mandag", "tirsdag", "onsdag", "torsdag", "fredag", "lørdag"}

var norwegianMonths = [...]string{"", "januar", "februar", "mars", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "desember"}

// DayLabel renders a program day heading, e.g. "Tirsdag 23. juni"
// or "Tuesday 23 June".
func DayLabel(t time.Time, language string) string {
	if locale.NormalizeLanguage(language) == locale.LanguageEnglish {
		return t.Format("Monday 2 January")
	}
	weekday := norwegianWeekdays[int(t.Weekday())]
	weekday = strings.ToUpper(weekday[:1]) + weekday[1:]
	return fmt.Sprintf("%s %d. %s", weekday, t.Day(), norwegianMonths[int(t.Month())])
}
