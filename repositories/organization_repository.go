package repositories

import (
	"context"
	"errors"
	"strings"

	"kartim.link/configs"
	"kartim.link/configs/configslog"
	"kartim.link/models"
	"kartim.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IOrganizationRepository tenant veritabanı işlemleri için arayüz.
type IOrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	FindByID(ctx context.Context, id uint) (*models.Organization, error)
	ListPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Organization, int64, error)
	Update(ctx context.Context, id uint, data map[string]interface{}) error
}

// OrganizationRepository IOrganizationRepository arayüzünü uygular.
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository yeni bir OrganizationRepository örneği oluşturur.
func NewOrganizationRepository() IOrganizationRepository {
	return &OrganizationRepository{db: configs.GetDB()}
}

// NewOrganizationRepositoryTx transaction içinde çalışan bir örnek oluşturur.
func NewOrganizationRepositoryTx(tx *gorm.DB) IOrganizationRepository {
	return &OrganizationRepository{db: tx}
}

func (r *OrganizationRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir tenant kaydı oluşturur.
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	if org == nil {
		return errors.New("oluşturulacak organizasyon nil olamaz")
	}
	return r.getDB(ctx).Create(org).Error
}

// FindByID ID ile tenant'ı bulur.
func (r *OrganizationRepository) FindByID(ctx context.Context, id uint) (*models.Organization, error) {
	if id == 0 {
		return nil, errors.New("geçersiz organizasyon ID")
	}
	var org models.Organization
	err := r.getDB(ctx).First(&org, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		configslog.Log.Error("OrganizationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &org, nil
}

// ListPaginated tüm tenant'ları sayfalayarak listeler (platform admin ekranı).
func (r *OrganizationRepository) ListPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Organization, int64, error) {
	db := r.getDB(ctx)

	var total int64
	if err := db.Model(&models.Organization{}).Count(&total).Error; err != nil {
		configslog.Log.Error("OrganizationRepository.ListPaginated: count error", zap.Error(err))
		return nil, 0, err
	}

	// Sıralama kolonu kullanıcı girdisidir; SQL'e yalnızca izin listesi
	// üzerinden girer. Liste dışı değerler varsayılana düşer.
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = "desc"
	}
	allowedSortColumns := map[string]string{
		"id":         "id",
		"name":       "name",
		"status":     "status",
		"created_at": "created_at",
	}
	orderColumn := "created_at" // Varsayılan
	if dbCol, ok := allowedSortColumns[params.SortBy]; ok {
		orderColumn = dbCol
	}

	var orgs []models.Organization
	err := db.Order(orderColumn + " " + orderBy).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&orgs).Error
	if err != nil {
		configslog.Log.Error("OrganizationRepository.ListPaginated: DB error", zap.Error(err))
		return nil, 0, err
	}
	return orgs, total, nil
}

// Update tenant alanlarını map ile günceller.
func (r *OrganizationRepository) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if id == 0 {
		return errors.New("güncellenecek organizasyon ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	result := r.getDB(ctx).Model(&models.Organization{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.getDB(ctx).Model(&models.Organization{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ IOrganizationRepository = (*OrganizationRepository)(nil)
