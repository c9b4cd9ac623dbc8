package models

// Profile kullanıcının public dijital kartvizit profili (1:1 user).
// Slug global olarak benzersizdir ve public URL'i adresler (/p/:slug).
type Profile struct {
	BaseModel
	UserID      uint   `gorm:"uniqueIndex;not null" json:"userId"`
	Slug        string `gorm:"type:varchar(20);uniqueIndex;not null" json:"slug"`
	DisplayName string `gorm:"type:varchar(100);not null" json:"displayName"`
	Title       string `gorm:"type:varchar(100)" json:"title"`
	Company     string `gorm:"type:varchar(150)" json:"company"`
	Bio         string `gorm:"type:text" json:"bio"`
	Phone       string `gorm:"type:varchar(30)" json:"phone"`
	Website     string `gorm:"type:varchar(500)" json:"website"`
	AvatarURL   string `gorm:"type:varchar(500)" json:"avatarUrl"`
	IsPublic    bool   `gorm:"default:true;index" json:"isPublic"`

	// GORM İlişkileri
	Links []ProfileLink `gorm:"foreignKey:UserID;references:UserID" json:"links,omitempty"`
}
