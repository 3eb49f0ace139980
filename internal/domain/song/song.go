package song

import (
	"fmt"
	"time"

	"melodia/internal/shared/id"
)

// Song represents a track in the marketplace: either uploaded by a user or
// produced by the AI music pipeline.
type Song struct {
	songID      uint
	sid         string
	title       string
	description string
	audioURL    string
	coverImage  string
	duration    int
	genre       string
	mood        string
	language    string
	tempo       int
	key         string
	price       int64
	licenseType string
	tags        []string
	authorID    uint
	isPublic    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewSong creates a new song owned by authorID. Duration is in seconds.
func NewSong(title, audioURL string, duration int, authorID uint) (*Song, error) {
	if title == "" {
		return nil, fmt.Errorf("song title is required")
	}
	if audioURL == "" {
		return nil, fmt.Errorf("audio URL is required")
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	now := time.Now().UTC()
	return &Song{
		sid:       id.MustGenerateWithPrefix(id.PrefixSong, id.DefaultLength),
		title:     title,
		audioURL:  audioURL,
		duration:  duration,
		authorID:  authorID,
		isPublic:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSong reconstructs a song from persistence.
func ReconstructSong(songID uint, sid, title, description, audioURL, coverImage string,
	duration int, genre, mood, language string, tempo int, key string,
	price int64, licenseType string, tags []string, authorID uint, isPublic bool,
	createdAt, updatedAt time.Time) (*Song, error) {

	if songID == 0 {
		return nil, fmt.Errorf("song ID cannot be zero")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	return &Song{
		songID:      songID,
		sid:         sid,
		title:       title,
		description: description,
		audioURL:    audioURL,
		coverImage:  coverImage,
		duration:    duration,
		genre:       genre,
		mood:        mood,
		language:    language,
		tempo:       tempo,
		key:         key,
		price:       price,
		licenseType: licenseType,
		tags:        tags,
		authorID:    authorID,
		isPublic:    isPublic,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (s *Song) ID() uint             { return s.songID }
func (s *Song) SID() string          { return s.sid }
func (s *Song) Title() string        { return s.title }
func (s *Song) Description() string  { return s.description }
func (s *Song) AudioURL() string     { return s.audioURL }
func (s *Song) CoverImage() string   { return s.coverImage }
func (s *Song) Duration() int        { return s.duration }
func (s *Song) Genre() string        { return s.genre }
func (s *Song) Mood() string         { return s.mood }
func (s *Song) Language() string     { return s.language }
func (s *Song) Tempo() int           { return s.tempo }
func (s *Song) Key() string          { return s.key }
func (s *Song) Price() int64         { return s.price }
func (s *Song) LicenseType() string  { return s.licenseType }
func (s *Song) Tags() []string       { return s.tags }
func (s *Song) AuthorID() uint       { return s.authorID }
func (s *Song) IsPublic() bool       { return s.isPublic }
func (s *Song) CreatedAt() time.Time { return s.createdAt }
func (s *Song) UpdatedAt() time.Time { return s.updatedAt }

// SetID assigns the persistence ID after creation.
func (s *Song) SetID(songID uint) error {
	if s.songID != 0 {
		return fmt.Errorf("song ID already set")
	}
	if songID == 0 {
		return fmt.Errorf("song ID cannot be zero")
	}
	s.songID = songID
	return nil
}

// SetMetadata fills the optional marketplace fields in one pass.
func (s *Song) SetMetadata(description, coverImage, genre, mood, language string,
	tempo int, key string, price int64, licenseType string, tags []string) {

	s.description = description
	s.coverImage = coverImage
	s.genre = genre
	s.mood = mood
	s.language = language
	s.tempo = tempo
	s.key = key
	s.price = price
	s.licenseType = licenseType
	s.tags = tags
	s.updatedAt = time.Now().UTC()
}

// SetVisibility toggles marketplace listing.
func (s *Song) SetVisibility(public bool) {
	s.isPublic = public
	s.updatedAt = time.Now().UTC()
}
