package models

// Link türleri: sns (hazır sosyal ağ linki) veya custom (serbest link).
const (
	LinkKindSNS    = "sns"
	LinkKindCustom = "custom"
)

// ProfileLink profilde gösterilen SNS/özel link satırı.
// DisplayOrder kullanıcı başına yoğun (dense) bir sıra numarasıdır:
// oluşturma anında "mevcut max + 1" atanır, ilk link 1 alır.
// Boşluk doldurma veya yeniden sıralama garantisi yoktur (last-write-wins).
type ProfileLink struct {
	BaseModel
	UserID       uint   `gorm:"not null;index:idx_profile_links_user" json:"userId"`
	Kind         string `gorm:"type:varchar(10);not null;default:'custom'" json:"kind"`
	Label        string `gorm:"type:varchar(100);not null" json:"label"`
	URL          string `gorm:"type:varchar(500);not null" json:"url"`
	DisplayOrder int    `gorm:"not null;default:0;index:idx_profile_links_user" json:"displayOrder"`
}
