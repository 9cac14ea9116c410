package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WelcomeMessage is the SMS body sent to new accounts with a phone number
const WelcomeMessage = "Welcome to SmartRent, %s! Your account has been created."

// AccountServiceImpl implements domain.AccountManager
type AccountServiceImpl struct {
	accountRepo     domain.AccountRepository
	passwordSvc     domain.PasswordService
	notificationSvc domain.NotificationService
	auditLogger     domain.AuditLogger
	logger          *zap.Logger
	now             domain.Clock
}

// NewAccountService creates a new account service. notificationSvc and
// auditLogger may be nil; logger nil means no logging; clock nil means time.Now.
func NewAccountService(
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	notificationSvc domain.NotificationService,
	auditLogger domain.AuditLogger,
	logger *zap.Logger,
	clock domain.Clock,
) domain.AccountManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &AccountServiceImpl{
		accountRepo:     accountRepo,
		passwordSvc:     passwordSvc,
		notificationSvc: notificationSvc,
		auditLogger:     auditLogger,
		logger:          logger,
		now:             clock,
	}
}

// CreateUser implements domain.AccountManager
func (s *AccountServiceImpl) CreateUser(ctx context.Context, email, password string, fields domain.AccountFields) (*domain.Account, error) {
	account, err := s.create(ctx, email, password, fields)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, domain.NewAuditEvent(domain.AccountCreatedEvent, account.ID).
		WithEmail(account.Email).
		WithMetadata("role", string(account.Role)))
	s.sendWelcome(account)
	return account, nil
}

// CreateSuperuser implements domain.AccountManager
func (s *AccountServiceImpl) CreateSuperuser(ctx context.Context, email, password string, fields domain.AccountFields) (*domain.Account, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.NewValidationError("email", "Superusers must have an email.", domain.ErrEmailRequired)
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "Superusers must have a password.", domain.ErrPasswordRequired)
	}

	if fields.IsStaff == nil {
		fields.IsStaff = boolPtr(true)
	}
	if fields.IsActive == nil {
		fields.IsActive = boolPtr(true)
	}
	if fields.IsSuperuser == nil {
		fields.IsSuperuser = boolPtr(true)
	}
	if !*fields.IsStaff {
		return nil, domain.NewValidationError("", "Superuser must have is_staff=True.", domain.ErrPrivilegeConfiguration)
	}
	if !*fields.IsSuperuser {
		return nil, domain.NewValidationError("", "Superuser must have is_superuser=True.", domain.ErrPrivilegeConfiguration)
	}
	fields.Role = domain.RoleAdmin
	fields.IsVerified = boolPtr(true)

	account, err := s.create(ctx, email, password, fields)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, domain.NewAuditEvent(domain.SuperuserCreatedEvent, account.ID).WithEmail(account.Email))
	return account, nil
}

func (s *AccountServiceImpl) create(ctx context.Context, email, password string, fields domain.AccountFields) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("email", "Email is required", domain.ErrEmailRequired)
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "User must have password", domain.ErrPasswordRequired)
	}
	if err := requireNames(fields.FirstName, fields.LastName); err != nil {
		return nil, err
	}
	if fields.Role != "" && !fields.Role.Valid() {
		return nil, domain.NewValidationError("role", fmt.Sprintf("%q is not a valid choice.", fields.Role), nil)
	}
	if fields.Sex != "" && !fields.Sex.Valid() {
		return nil, domain.NewValidationError("sex", fmt.Sprintf("%q is not a valid choice.", fields.Sex), nil)
	}
	if fields.DOB != nil && domain.Date(*fields.DOB).After(domain.Date(s.now())) {
		return nil, domain.NewValidationError("dob", "Date of birth can't be in the future", domain.ErrDOBInFuture)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := newAccount(email, hashedPassword, fields)
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(account.Role)))
	return account, nil
}

// requireNames reports every blank name field
func requireNames(firstName, lastName string) error {
	var errs domain.ValidationErrors
	if strings.TrimSpace(firstName) == "" {
		errs = append(errs, domain.NewValidationError("first_name", "This field is required.", domain.ErrNameRequired))
	}
	if strings.TrimSpace(lastName) == "" {
		errs = append(errs, domain.NewValidationError("last_name", "This field is required.", domain.ErrNameRequired))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// newAccount merges fields over the account defaults
func newAccount(email, passwordHash string, fields domain.AccountFields) *domain.Account {
	account := &domain.Account{
		Email:        email,
		FirstName:    strings.TrimSpace(fields.FirstName),
		LastName:     strings.TrimSpace(fields.LastName),
		PhoneNumber:  strings.TrimSpace(fields.PhoneNumber),
		Sex:          fields.Sex,
		DOB:          fields.DOB,
		Address:      fields.Address,
		ProfilePhoto: fields.ProfilePhoto,
		Credentials: domain.Credentials{
			PasswordHash: passwordHash,
			IsActive:     boolOr(fields.IsActive, true),
			IsVerified:   boolOr(fields.IsVerified, false),
		},
		Permissions: domain.Permissions{
			Role:        fields.Role,
			IsStaff:     boolOr(fields.IsStaff, false),
			IsSuperuser: boolOr(fields.IsSuperuser, false),
		},
	}
	if account.Role == "" {
		account.Role = domain.RoleTenant
	}
	if account.DOB != nil {
		dob := domain.Date(*account.DOB)
		account.DOB = &dob
	}
	return account
}

// GetByID implements domain.AccountManager. A malformed id is reported as
// absent, not as an error.
func (s *AccountServiceImpl) GetByID(ctx context.Context, id string) (*domain.Account, bool, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, false, nil
	}
	account, err := s.accountRepo.FindByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find account: %w", err)
	}
	return account, true, nil
}

// GetByNormalizedEmail implements domain.AccountManager
func (s *AccountServiceImpl) GetByNormalizedEmail(ctx context.Context, email string) (*domain.Account, error) {
	normalized := domain.NormalizeEmail(email)
	if normalized == "" {
		return nil, domain.ErrAccountNotFound
	}
	return s.accountRepo.FindByEmail(ctx, normalized)
}

// List implements domain.AccountManager
func (s *AccountServiceImpl) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Search implements domain.AccountManager
func (s *AccountServiceImpl) Search(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.NewValidationError("role", fmt.Sprintf("%q is not a valid choice.", filter.Role), nil)
	}
	if _, ok := filter.DateJoined.Since(s.now()); filter.DateJoined != domain.JoinedAnyTime && !ok {
		return nil, domain.NewValidationError("date_joined", fmt.Sprintf("%q is not a valid choice.", filter.DateJoined), nil)
	}
	accounts, err := s.accountRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

// UpdateProfile implements domain.AccountManager
func (s *AccountServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return account, nil
	}

	changed, err := s.applyProfile(account, update)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.audit(ctx, domain.NewAuditEvent(domain.ProfileUpdatedEvent, account.ID).
		WithEmail(account.Email).
		WithMetadata("fields", changed))
	return account, nil
}

// applyProfile copies the provided fields onto account and returns their names
func (s *AccountServiceImpl) applyProfile(account *domain.Account, update domain.ProfileUpdate) ([]string, error) {
	var changed []string

	if update.FirstName != nil {
		account.FirstName = strings.TrimSpace(*update.FirstName)
		changed = append(changed, "first_name")
	}
	if update.LastName != nil {
		account.LastName = strings.TrimSpace(*update.LastName)
		changed = append(changed, "last_name")
	}
	if update.FirstName != nil || update.LastName != nil {
		if err := requireNames(account.FirstName, account.LastName); err != nil {
			return nil, err
		}
	}
	if update.Email != nil {
		email := domain.NormalizeEmail(*update.Email)
		if email == "" {
			return nil, domain.NewValidationError("email", "Email is required", domain.ErrEmailRequired)
		}
		account.Email = email
		changed = append(changed, "email")
	}
	if update.PhoneNumber != nil {
		account.PhoneNumber = strings.TrimSpace(*update.PhoneNumber)
		changed = append(changed, "phone_number")
	}
	if update.DOB != nil {
		dob := domain.Date(*update.DOB)
		if dob.After(domain.Date(s.now())) {
			return nil, domain.NewValidationError("dob", "Date of birth can't be in the future", domain.ErrDOBInFuture)
		}
		account.DOB = &dob
		changed = append(changed, "dob")
	}
	if update.Sex != nil {
		if !update.Sex.Valid() {
			return nil, domain.NewValidationError("sex", fmt.Sprintf("%q is not a valid choice.", *update.Sex), nil)
		}
		account.Sex = *update.Sex
		changed = append(changed, "sex")
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, domain.NewValidationError("role", fmt.Sprintf("%q is not a valid choice.", *update.Role), nil)
		}
		if account.IsSuperuser && *update.Role != domain.RoleAdmin {
			return nil, domain.NewValidationError("role", "Superuser must have role=admin.", domain.ErrPrivilegeConfiguration)
		}
		account.Role = *update.Role
		changed = append(changed, "role")
	}
	if update.Address != nil {
		account.Address = *update.Address
		changed = append(changed, "address")
	}
	if update.ProfilePhoto != nil {
		key := strings.TrimSpace(*update.ProfilePhoto)
		if key != "" && !account.OwnsPhotoKey(key) {
			return nil, domain.NewValidationError("profile_photo", "Photo key must come from this account's upload URL.", domain.ErrForeignPhotoKey)
		}
		account.ProfilePhoto = key
		changed = append(changed, "profile_photo")
	}
	return changed, nil
}

// SetActive implements domain.AccountManager
func (s *AccountServiceImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.IsActive == active {
		return account, nil
	}

	account.IsActive = active
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	eventType := domain.AccountDeactivatedEvent
	if active {
		eventType = domain.AccountActivatedEvent
	}
	s.audit(ctx, domain.NewAuditEvent(eventType, account.ID).WithEmail(account.Email))
	return account, nil
}

// Authenticate implements domain.AccountManager
func (s *AccountServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	normalized := domain.NormalizeEmail(email)

	account, err := s.accountRepo.FindByEmail(ctx, normalized)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("failed to find account: %w", err)
		}
		s.audit(ctx, domain.NewAuditEvent(domain.LoginFailureEvent, uuid.Nil).
			WithEmail(normalized).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		s.audit(ctx, domain.NewAuditEvent(domain.LoginFailureEvent, account.ID).
			WithEmail(normalized).
			WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if !account.IsActive {
		s.audit(ctx, domain.NewAuditEvent(domain.LoginFailureEvent, account.ID).
			WithEmail(normalized).
			WithError(domain.ErrAccountInactive))
		return nil, domain.ErrAccountInactive
	}

	now := s.now().UTC()
	if err := s.accountRepo.TouchLastLogin(ctx, account.ID, now); err != nil {
		s.logger.Warn("failed to record last login",
			zap.String("account_id", account.ID.String()),
			zap.Error(err))
	} else {
		account.LastLogin = &now
	}

	s.audit(ctx, domain.NewAuditEvent(domain.LoginEvent, account.ID).WithEmail(normalized))
	return account, nil
}

func (s *AccountServiceImpl) audit(ctx context.Context, event *domain.AuditEvent) {
	if s.auditLogger == nil {
		return
	}
	event.Timestamp = s.now().UTC()
	if err := s.auditLogger.LogEvent(ctx, event); err != nil {
		s.logger.Warn("failed to log audit event",
			zap.String("event_type", string(event.EventType)),
			zap.Error(err))
	}
}

// sendWelcome sends the welcome SMS. Failures are logged and swallowed.
func (s *AccountServiceImpl) sendWelcome(account *domain.Account) {
	if s.notificationSvc == nil || account.PhoneNumber == "" {
		return
	}
	name := account.FirstName
	if name == "" {
		name = account.Email
	}
	if err := s.notificationSvc.SendSMS(account.PhoneNumber, fmt.Sprintf(WelcomeMessage, name)); err != nil {
		s.logger.Warn("failed to send welcome sms",
			zap.String("account_id", account.ID.String()),
			zap.Error(err))
	}
}

func boolPtr(b bool) *bool { return &b }

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
