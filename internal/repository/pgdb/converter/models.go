package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
// Цена читается как текст (price::text), чтобы не терять точность numeric.
type ProductModel struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Handle      string     `db:"handle"`
	Price       string     `db:"price"`
	Description string     `db:"description"`
	Fabric      string     `db:"fabric"`
	Fit         string     `db:"fit"`
	Care        string     `db:"care"`
	Images      []string   `db:"images"`
	Sizes       []string   `db:"sizes"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// SiteContentModel — JSONB-документ таблицы site_content.
// Ключи верхнего уровня (home, about) заменяются при записи целиком.
type SiteContentModel struct {
	Home  *HomeContentModel  `json:"home,omitempty"`
	About *AboutContentModel `json:"about,omitempty"`
}

type HomeContentModel struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	HeroImageID string `json:"heroImageId"`
}

type AboutContentModel struct {
	Heading       string   `json:"heading"`
	Paragraphs    []string `json:"paragraphs"`
	StudioImageID string   `json:"studioImageId"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID string     `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
