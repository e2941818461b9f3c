package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/renewals/backend/internal/attachment"
	"github.com/pageza/renewals/backend/internal/models"
	"github.com/pageza/renewals/backend/internal/types"
)

// AttachmentURLTTL is how long a presigned attachment URL stays valid
const AttachmentURLTTL = 15 * time.Minute

// CustomerAttachment is a decoded customer file ready for download
type CustomerAttachment struct {
	Filename string
	MimeType string
	Content  []byte
}

type CustomerService struct {
	db      *gorm.DB
	archive AttachmentArchive
	log     *zap.Logger
}

// NewCustomerService creates the customer service. archive may be nil, in
// which case attachments live only in the database.
func NewCustomerService(db *gorm.DB, archive AttachmentArchive, log *zap.Logger) *CustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomerService{
		db:      db,
		archive: archive,
		log:     log.Named("customers"),
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *types.CreateCustomerRequest) (*models.Customer, error) {
	// The attachment is a precondition of the whole write
	admitted, err := attachment.ValidateAndNormalize(req.AttachmentData, req.AttachmentMimeType)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:                   strings.TrimSpace(req.Name),
		Email:                  req.Email,
		Company:                strings.TrimSpace(req.Company),
		AccountManager:         req.AccountManager,
		OpportunityName:        req.OpportunityName,
		RenewalAmount:          req.RenewalAmount,
		Status:                 req.Status,
		Software:               req.Software,
		Churn:                  req.Churn,
		ChurnReason:            req.ChurnReason,
		PilotCustomer:          req.PilotCustomer,
		Site:                   req.Site,
		ResponsibleSalesperson: req.ResponsibleSalesperson,
		RenewalExpirationDate:  req.RenewalExpirationDate,
	}
	if customer.Status == "" {
		customer.Status = "active"
	}
	applyAttachment(customer, admitted, req.AttachmentFilename)

	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.archiveAttachment(ctx, customer.ID, admitted)
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "customer", id)
	}
	return &customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, filters *models.CustomerFilters) ([]*models.Customer, error) {
	query := s.db.WithContext(ctx)

	if filters != nil {
		if filters.Software != "" {
			query = query.Where("software = ?", filters.Software)
		}
		if filters.Churned != nil {
			query = query.Where("churn = ?", *filters.Churned)
		}
		if filters.Search != "" {
			pattern := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern)
		}
	}

	var customers []*models.Customer
	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req *types.UpdateCustomerRequest) (*models.Customer, error) {
	var admitted *attachment.Attachment
	if req.AttachmentData != nil {
		var err error
		admitted, err = attachment.ValidateAndNormalize(*req.AttachmentData, req.AttachmentMimeType)
		if err != nil {
			return nil, err
		}
	}

	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	hadAttachment := customer.HasAttachment()

	patchString(&customer.Name, req.Name)
	patchString(&customer.Email, req.Email)
	patchString(&customer.Company, req.Company)
	patchString(&customer.AccountManager, req.AccountManager)
	patchString(&customer.OpportunityName, req.OpportunityName)
	patchString(&customer.Status, req.Status)
	patchString(&customer.Software, req.Software)
	patchString(&customer.ChurnReason, req.ChurnReason)
	patchString(&customer.Site, req.Site)
	patchString(&customer.ResponsibleSalesperson, req.ResponsibleSalesperson)
	if req.RenewalAmount != nil {
		customer.RenewalAmount = req.RenewalAmount
	}
	if req.Churn != nil {
		customer.Churn = *req.Churn
	}
	if req.PilotCustomer != nil {
		customer.PilotCustomer = *req.PilotCustomer
	}
	if req.RenewalExpirationDate != nil {
		customer.RenewalExpirationDate = req.RenewalExpirationDate
	}
	if req.AttachmentData != nil {
		applyAttachment(customer, admitted, req.AttachmentFilename)
	}

	if err := s.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	switch {
	case admitted != nil:
		s.archiveAttachment(ctx, customer.ID, admitted)
	case req.AttachmentData != nil && hadAttachment:
		s.removeArchived(ctx, customer.ID)
	}
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sqlite does not enforce the cascade unless foreign keys are enabled
		if err := tx.Where("customer_id = ?", id).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Customer{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if customer.HasAttachment() {
		s.removeArchived(ctx, id)
	}
	return nil
}

// GetAttachment decodes the stored file of a customer
func (s *CustomerService) GetAttachment(ctx context.Context, id uuid.UUID) (*CustomerAttachment, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !customer.HasAttachment() {
		return nil, ErrNoAttachment
	}

	content, err := attachment.Decode(customer.AttachmentData)
	if err != nil {
		return nil, fmt.Errorf("stored attachment for customer %s: %w", id, err)
	}
	return &CustomerAttachment{
		Filename: customer.AttachmentFilename,
		MimeType: customer.AttachmentMimeType,
		Content:  content,
	}, nil
}

// AttachmentURL returns a presigned download URL for the archived copy
func (s *CustomerService) AttachmentURL(ctx context.Context, id uuid.UUID) (string, time.Time, error) {
	if s.archive == nil {
		return "", time.Time{}, ErrArchiveDisabled
	}
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return "", time.Time{}, err
	}
	if !customer.HasAttachment() {
		return "", time.Time{}, ErrNoAttachment
	}

	// A failed upload leaves no object behind; restore it from the row first.
	key := attachmentKey(id)
	archived, err := s.archive.Exists(ctx, key)
	if err != nil {
		return "", time.Time{}, err
	}
	if !archived {
		content, err := attachment.Decode(customer.AttachmentData)
		if err != nil {
			return "", time.Time{}, fmt.Errorf("stored attachment for customer %s: %w", id, err)
		}
		if err := s.archive.Store(ctx, key, customer.AttachmentMimeType, content); err != nil {
			return "", time.Time{}, err
		}
		s.log.Info("attachment re-archived", zap.String("customer_id", id.String()))
	}

	url, err := s.archive.PresignedURL(ctx, key, AttachmentURLTTL)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to presign attachment URL: %w", err)
	}
	return url, time.Now().Add(AttachmentURLTTL), nil
}

// archiveAttachment copies admitted bytes to the archive. The database row
// stays authoritative, so failures are logged and not returned.
func (s *CustomerService) archiveAttachment(ctx context.Context, id uuid.UUID, admitted *attachment.Attachment) {
	if s.archive == nil || admitted == nil {
		return
	}
	if err := s.archive.Store(ctx, attachmentKey(id), admitted.MimeType, admitted.Bytes()); err != nil {
		s.log.Warn("attachment archive upload failed", zap.String("customer_id", id.String()), zap.Error(err))
	}
}

func (s *CustomerService) removeArchived(ctx context.Context, id uuid.UUID) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Remove(ctx, attachmentKey(id)); err != nil {
		s.log.Warn("attachment archive delete failed", zap.String("customer_id", id.String()), zap.Error(err))
	}
}

// applyAttachment stores admitted on customer, or clears the file when nil
func applyAttachment(customer *models.Customer, admitted *attachment.Attachment, filename string) {
	if admitted == nil {
		customer.ClearAttachment()
		return
	}
	customer.AttachmentData = admitted.DataURI
	customer.AttachmentMimeType = admitted.MimeType
	customer.AttachmentSize = admitted.Size
	customer.AttachmentFilename = filename
}

func patchString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
