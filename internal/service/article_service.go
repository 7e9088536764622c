package service

import (
	"errors"
	"strings"
	"time"

	"github.com/RKMF/kammerfest/internal/db"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrArticleSlugTaken = errors.New("article slug already in use")
	ErrArticleTitle     = errors.New("norwegian article title is required")
)

// ArticleService wraps news article operations.
type ArticleService struct {
	db *gorm.DB
}

// ArticleInput represents fields accepted when creating or updating
// an article.
type ArticleInput struct {
	Slug        string
	TitleNO     string
	TitleEN     string
	LeadNO      string
	LeadEN      string
	BodyNO      string
	BodyEN      string
	CoverURL    string
	CoverWidth  int
	CoverHeight int
	Status      string
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// ListAll returns every article for the studio, newest first.
func (s *ArticleService) ListAll() ([]db.Article, error) {
	var articles []db.Article
	if err := s.db.Order("created_at desc").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// ListPublished returns published articles, newest publication first.
func (s *ArticleService) ListPublished(limit int) ([]db.Article, error) {
	query := s.db.Where("status = ?", "published").
		Order("published_at desc").Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var articles []db.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Get fetches an article by id.
func (s *ArticleService) Get(id uint) (*db.Article, error) {
	var article db.Article
	if err := s.db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// GetPublishedBySlug fetches a published article for the public site.
func (s *ArticleService) GetPublishedBySlug(slug string) (*db.Article, error) {
	var article db.Article
	if err := s.db.Where("slug = ? AND status = ?", slug, "published").
		First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Create persists an article. Publishing stamps PublishedAt once.
func (s *ArticleService) Create(input ArticleInput) (*db.Article, error) {
	if strings.TrimSpace(input.TitleNO) == "" {
		return nil, ErrArticleTitle
	}

	article := db.Article{
		Slug:        strings.TrimSpace(input.Slug),
		TitleNO:     strings.TrimSpace(input.TitleNO),
		TitleEN:     strings.TrimSpace(input.TitleEN),
		LeadNO:      strings.TrimSpace(input.LeadNO),
		LeadEN:      strings.TrimSpace(input.LeadEN),
		BodyNO:      input.BodyNO,
		BodyEN:      input.BodyEN,
		CoverURL:    strings.TrimSpace(input.CoverURL),
		CoverWidth:  input.CoverWidth,
		CoverHeight: input.CoverHeight,
		Status:      normalizeStatus(input.Status),
	}
	if article.Status == "published" {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := s.db.Create(&article).Error; err != nil {
		return nil, translateSlugError(err, ErrArticleSlugTaken)
	}
	return &article, nil
}

// Update applies updates to an existing article.
func (s *ArticleService) Update(id uint, input ArticleInput) (*db.Article, error) {
	if strings.TrimSpace(input.TitleNO) == "" {
		return nil, ErrArticleTitle
	}

	article, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	article.Slug = strings.TrimSpace(input.Slug)
	article.TitleNO = strings.TrimSpace(input.TitleNO)
	article.TitleEN = strings.TrimSpace(input.TitleEN)
	article.LeadNO = strings.TrimSpace(input.LeadNO)
	article.LeadEN = strings.TrimSpace(input.LeadEN)
	article.BodyNO = input.BodyNO
	article.BodyEN = input.BodyEN
	article.CoverURL = strings.TrimSpace(input.CoverURL)
	article.CoverWidth = input.CoverWidth
	article.CoverHeight = input.CoverHeight

	status := normalizeStatus(input.Status)
	if status == "published" && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}
	article.Status = status

	if err := s.db.Save(article).Error; err != nil {
		return nil, translateSlugError(err, ErrArticleSlugTaken)
	}
	return article, nil
}

// Delete removes an article.
func (s *ArticleService) Delete(id uint) error {
	article, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(article).Error
}

// CopyTranslation fills empty English fields from the Norwegian
// originals without touching existing translations.
func (s *ArticleService) CopyTranslation(id uint) (*db.Article, error) {
	article, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	changed := false
	if strings.TrimSpace(article.TitleEN) == "" && article.TitleNO != "" {
		article.TitleEN = article.TitleNO
		changed = true
	}
	if strings.TrimSpace(article.LeadEN) == "" && article.LeadNO != "" {
		article.LeadEN = article.LeadNO
		changed = true
	}
	if strings.TrimSpace(article.BodyEN) == "" && article.BodyNO != "" {
		article.BodyEN = article.BodyNO
		changed = true
	}

	if !changed {
		return article, nil
	}
	if err := s.db.Model(article).Updates(map[string]any{
		"title_en": article.TitleEN,
		"lead_en":  article.LeadEN,
		"body_en":  article.BodyEN,
	}).Error; err != nil {
		return nil, err
	}
	return article, nil
}
