package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/interfaces"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/logger"
)

var (
	ErrDiscountNotFound  = errors.New("discount code not found or inactive")
	ErrDiscountExpired   = errors.New("discount code has expired")
	ErrDiscountExhausted = errors.New("discount code usage limit exceeded")
	ErrAlreadyCollected  = errors.New("voucher already collected")
	ErrDiscountUsed      = errors.New("discount code has already been used")
	ErrCodeGeneration    = errors.New("could not generate a unique discount code")
)

type voucherTemplate struct {
	kind     string
	short    string
	detailed string
}

var clothesTemplates = []voucherTemplate{
	{"Summer Sale", "Beat the heat with summer savings", "Get amazing discounts on summer collection including light fabrics, swimwear, and casual outfits."},
	{"Winter Clearance", "Warm up with winter deals", "Stay cozy with discounts on winter essentials including jackets, sweaters, boots, and thermal wear."},
	{"Flash Sale", "Lightning fast clothing savings", "Limited time flash sale on trending fashion items. Grab your favorite clothes before they're gone!"},
	{"New Arrival", "Fresh fashion discounts", "Be the first to wear the latest fashion trends with special discounts on new arrivals."},
}

var shippingTemplates = []voucherTemplate{
	{"Free Shipping", "Free delivery on your order", "Enjoy free shipping on your clothing purchases. No minimum order required."},
	{"Express Delivery", "Discounted express shipping", "Get your fashion items faster with discounted express delivery options."},
	{"Shipping Special", "Special shipping discount", "Save on shipping costs for your fashion purchases with this special voucher."},
}

// GenerationResult reports the outcome of a voucher batch.
type GenerationResult struct {
	DiscountsCreated int                `json:"discounts_created"`
	TotalUsers       int                `json:"total_users"`
	TotalAssignments int                `json:"total_assignments"`
	Discounts        []*models.Discount `json:"discounts"`
}

// DiscountPreview is the result of applying a code against an amount
// without consuming it.
type DiscountPreview struct {
	OriginalAmount     float64 `json:"original_amount"`
	DiscountPercentage int     `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	FinalAmount        float64 `json:"final_amount"`
	DiscountCode       string  `json:"discount_code"`
	Description        string  `json:"description"`
	VoucherType        string  `json:"voucher_type,omitempty"`
	AssignmentType     string  `json:"assignment_type,omitempty"`
}

// VoucherSummary is a compact voucher view for listings.
type VoucherSummary struct {
	Code                string     `json:"code"`
	Percentage          int        `json:"percentage"`
	Description         string     `json:"description"`
	DetailedDescription string     `json:"detailed_description,omitempty"`
	VoucherType         string     `json:"voucher_type"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	UsageLimit          *int       `json:"usage_limit,omitempty"`
	UsedCount           int        `json:"used_count"`
	IsUsed              bool       `json:"is_used"`
	IsExpired           bool       `json:"is_expired"`
}

// AvailableVouchers groups collectible vouchers by type.
type AvailableVouchers struct {
	TotalAvailable   int              `json:"total_available"`
	ClothesVouchers  []VoucherSummary `json:"clothes_vouchers"`
	ShippingVouchers []VoucherSummary `json:"shipping_vouchers"`
}

type DiscountService interface {
	GenerateDiscounts(ctx context.Context, req *models.GenerateDiscountsRequest) (*GenerationResult, error)
	GrantWelcomeVouchers(ctx context.Context, username string) ([]string, error)

	ListAvailable(ctx context.Context, username string) (*AvailableVouchers, error)
	ListAssigned(ctx context.Context, username string) ([]VoucherSummary, error)
	ListAssignedForUser(ctx context.Context, username string) ([]VoucherSummary, error)
	CollectVoucher(ctx context.Context, username, code string) (*VoucherSummary, error)
	CollectAllVouchers(ctx context.Context, username string) ([]VoucherSummary, error)

	ApplyDiscount(ctx context.Context, code string, amount float64) (*DiscountPreview, error)
	ApplyAssignedDiscount(ctx context.Context, username, code string, amount float64) (*DiscountPreview, error)
	UseDiscount(ctx context.Context, username, code string) error

	AssignToUser(ctx context.Context, adminUser, username, code, notes string) error
	DeleteDiscount(ctx context.Context, code string) error

	// ResolveForPayment validates codes for settlement without consuming
	// them; ConsumeForPayment burns them once settlement succeeds.
	ResolveForPayment(ctx context.Context, username string, codes []string) ([]*models.Discount, error)
	ConsumeForPayment(ctx context.Context, username string, codes []string) error
}

type discountService struct {
	discountRepo interfaces.DiscountRepository
	userRepo     interfaces.UserRepository
	logger       *logger.Logger
	now          func() time.Time
}

func NewDiscountService(discountRepo interfaces.DiscountRepository, userRepo interfaces.UserRepository, log *logger.Logger) DiscountService {
	return &discountService{
		discountRepo: discountRepo,
		userRepo:     userRepo,
		logger:       log,
		now:          time.Now,
	}
}

// GenerateDiscounts creates a batch of voucher codes, 70% for clothes
// and 30% for shipping, and broadcasts every code to all active users.
func (s *discountService) GenerateDiscounts(ctx context.Context, req *models.GenerateDiscountsRequest) (*GenerationResult, error) {
	count := req.Count
	if count <= 0 {
		count = utils.VoucherBatchSize
	}
	assignedBy := req.AssignedBy
	if assignedBy == "" {
		assignedBy = "system_auto_assign"
	}

	usernames, err := s.userRepo.ListUsernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for voucher broadcast: %w", err)
	}

	clothesShare := count * utils.ClothesVoucherShare / utils.VoucherBatchSize

	result := &GenerationResult{TotalUsers: len(usernames)}
	for i := 0; i < count; i++ {
		code, err := s.uniqueCode(ctx)
		if err != nil {
			return nil, err
		}

		voucherType := models.VoucherTypeClothes
		templates := clothesTemplates
		if i >= clothesShare {
			voucherType = models.VoucherTypeShipping
			templates = shippingTemplates
		}

		percentage := utils.ValidVoucherPercentages[utils.SecureRandomInt(len(utils.ValidVoucherPercentages))]
		template := templates[utils.SecureRandomInt(len(templates))]
		expiresDays := utils.VoucherMinExpiryDays + utils.SecureRandomInt(utils.VoucherMaxExpiryDays-utils.VoucherMinExpiryDays+1)
		expiresAt := s.now().Add(time.Duration(expiresDays) * 24 * time.Hour)

		var usageLimit *int
		if limit := utils.VoucherUsageLimits[utils.SecureRandomInt(len(utils.VoucherUsageLimits))]; limit > 0 {
			usageLimit = &limit
		}

		now := s.now()
		assignments := make([]models.Assignment, 0, len(usernames))
		for _, username := range usernames {
			assignments = append(assignments, models.Assignment{
				Username:       username,
				DiscountCode:   code,
				CollectedAt:    now,
				AssignedAt:     now,
				AssignedBy:     assignedBy,
				AssignmentType: models.AssignmentTypeGlobal,
			})
		}
		result.TotalAssignments += len(assignments)

		discount := &models.Discount{
			Code:                code,
			Percentage:          percentage,
			Description:         fmt.Sprintf("%s - %d%% off", template.kind, percentage),
			DetailedDescription: fmt.Sprintf("%s - %d%% discount. %s", template.short, percentage, template.detailed),
			IsActive:            true,
			ExpiresAt:           &expiresAt,
			UsageLimit:          usageLimit,
			VoucherType:         voucherType,
			UserAssignments:     assignments,
		}

		if err := s.discountRepo.Create(ctx, discount); err != nil {
			return nil, fmt.Errorf("failed to create discount %s: %w", code, err)
		}

		result.Discounts = append(result.Discounts, discount)
		result.DiscountsCreated++
		s.logger.LogVoucherEvent(code, "created", map[string]interface{}{
			"percentage":   percentage,
			"voucher_type": voucherType,
		})
	}

	return result, nil
}

// uniqueCode draws random codes until an unused one is found, giving up
// after a bounded number of attempts.
func (s *discountService) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < utils.VoucherCodeMaxAttempts; attempt++ {
		code := utils.GenerateVoucherCode()
		exists, err := s.discountRepo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

// GrantWelcomeVouchers generates a fresh voucher batch and assigns it to
// the user as a welcome bonus. The grant happens at most once per user.
func (s *discountService) GrantWelcomeVouchers(ctx context.Context, username string) ([]string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.WelcomeVouchersAssigned {
		return nil, nil
	}

	existing, err := s.discountRepo.ListForUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vouchers: %w", err)
	}
	if len(existing) > 0 {
		if err := s.userRepo.SetWelcomeVouchersAssigned(ctx, username); err != nil {
			return nil, fmt.Errorf("failed to record welcome grant: %w", err)
		}
		return nil, nil
	}

	batch, err := s.GenerateDiscounts(ctx, &models.GenerateDiscountsRequest{AssignedBy: "system"})
	if err != nil {
		return nil, fmt.Errorf("failed to generate welcome vouchers: %w", err)
	}

	now := s.now()
	codes := make([]string, 0, len(batch.Discounts))
	for _, discount := range batch.Discounts {
		assignment := &models.Assignment{
			Username:       username,
			DiscountCode:   discount.Code,
			CollectedAt:    now,
			AssignedAt:     now,
			AssignedBy:     "system",
			AssignmentType: models.AssignmentTypeWelcome,
		}
		if _, err := s.discountRepo.PushAssignment(ctx, discount.Code, assignment); err != nil {
			return nil, fmt.Errorf("failed to assign welcome voucher %s: %w", discount.Code, err)
		}
		codes = append(codes, discount.Code)
	}

	if err := s.userRepo.SetWelcomeVouchersAssigned(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to record welcome grant: %w", err)
	}

	s.logger.LogUserAction(username, "welcome_vouchers_granted", map[string]interface{}{"count": len(codes)})
	return codes, nil
}

func (s *discountService) ListAvailable(ctx context.Context, username string) (*AvailableVouchers, error) {
	discounts, err := s.discountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &AvailableVouchers{
		ClothesVouchers:  []VoucherSummary{},
		ShippingVouchers: []VoucherSummary{},
	}
	now := s.now()
	for _, d := range discounts {
		if d.IsExpired(now) || d.AssignmentFor(username) != nil {
			continue
		}
		summary := summarize(d, nil, now)
		if d.VoucherType == models.VoucherTypeShipping {
			result.ShippingVouchers = append(result.ShippingVouchers, summary)
		} else {
			result.ClothesVouchers = append(result.ClothesVouchers, summary)
		}
		result.TotalAvailable++
	}
	return result, nil
}

func (s *discountService) ListAssigned(ctx context.Context, username string) ([]VoucherSummary, error) {
	discounts, err := s.discountRepo.ListForUser(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summaries := make([]VoucherSummary, 0, len(discounts))
	for _, d := range discounts {
		summaries = append(summaries, summarize(d, d.AssignmentFor(username), now))
	}
	return summaries, nil
}

// ListAssignedForUser is the admin view over another user's vouchers.
// Unlike ListAssigned it insists the user exists, so admins can tell a
// missing user apart from one holding nothing.
func (s *discountService) ListAssignedForUser(ctx context.Context, username string) ([]VoucherSummary, error) {
	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, ErrUserNotFound
	}
	return s.ListAssigned(ctx, username)
}

func (s *discountService) CollectVoucher(ctx context.Context, username, code string) (*VoucherSummary, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil || !discount.IsActive {
		return nil, ErrDiscountNotFound
	}
	if discount.AssignmentFor(username) != nil {
		return nil, ErrAlreadyCollected
	}
	if discount.IsExpired(s.now()) {
		return nil, ErrDiscountExpired
	}

	assignment := &models.Assignment{
		Username:       username,
		DiscountCode:   code,
		CollectedAt:    s.now(),
		AssignmentType: models.AssignmentTypeCollect,
	}
	added, err := s.discountRepo.PushAssignment(ctx, code, assignment)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyCollected
	}

	s.logger.LogVoucherEvent(code, "collected", map[string]interface{}{"username": username})
	summary := summarize(discount, assignment, s.now())
	return &summary, nil
}

func (s *discountService) CollectAllVouchers(ctx context.Context, username string) ([]VoucherSummary, error) {
	available, err := s.ListAvailable(ctx, username)
	if err != nil {
		return nil, err
	}

	collected := []VoucherSummary{}
	for _, summary := range append(available.ClothesVouchers, available.ShippingVouchers...) {
		voucher, err := s.CollectVoucher(ctx, username, summary.Code)
		if err != nil {
			if errors.Is(err, ErrAlreadyCollected) {
				continue
			}
			return nil, err
		}
		collected = append(collected, *voucher)
	}
	return collected, nil
}

// ApplyDiscount previews a public code against an amount. Nothing is
// consumed; consumption happens at settlement.
func (s *discountService) ApplyDiscount(ctx context.Context, code string, amount float64) (*DiscountPreview, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil || !discount.IsActive {
		return nil, ErrDiscountNotFound
	}
	if discount.IsExpired(s.now()) {
		return nil, ErrDiscountExpired
	}
	if discount.LimitReached() {
		return nil, ErrDiscountExhausted
	}

	return s.preview(discount, nil, amount), nil
}

// ApplyAssignedDiscount previews a code held by the user. Assigned codes
// take precedence over the public pool; an assigned-but-used code is
// rejected rather than silently falling back.
func (s *discountService) ApplyAssignedDiscount(ctx context.Context, username, code string, amount float64) (*DiscountPreview, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil || !discount.IsActive {
		return nil, ErrDiscountNotFound
	}

	assignment := discount.AssignmentFor(username)
	if assignment != nil && assignment.IsUsed {
		return nil, ErrDiscountUsed
	}
	if assignment == nil {
		// Fall back to public redemption rules.
		return s.ApplyDiscount(ctx, code, amount)
	}

	if discount.IsExpired(s.now()) {
		return nil, ErrDiscountExpired
	}
	if discount.LimitReached() {
		return nil, ErrDiscountExhausted
	}

	return s.preview(discount, assignment, amount), nil
}

func (s *discountService) preview(discount *models.Discount, assignment *models.Assignment, amount float64) *DiscountPreview {
	discountAmount := utils.Round2(amount * float64(discount.Percentage) / 100)
	p := &DiscountPreview{
		OriginalAmount:     amount,
		DiscountPercentage: discount.Percentage,
		DiscountAmount:     discountAmount,
		FinalAmount:        utils.Round2(amount - discountAmount),
		DiscountCode:       discount.Code,
		Description:        discount.Description,
		VoucherType:        string(discount.VoucherType),
	}
	if assignment != nil {
		p.AssignmentType = string(assignment.AssignmentType)
	}
	return p
}

// UseDiscount consumes a code exactly one way: a holder's assignment
// flips to used, everyone else draws from the public usage counter.
// Validation runs before either write, so a rejected use leaves the
// code untouched and retryable.
func (s *discountService) UseDiscount(ctx context.Context, username, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil || !discount.IsActive {
		return ErrDiscountNotFound
	}
	if discount.IsExpired(s.now()) {
		return ErrDiscountExpired
	}

	if assignment := discount.AssignmentFor(username); assignment != nil {
		if assignment.IsUsed {
			return ErrDiscountUsed
		}
		marked, err := s.discountRepo.MarkAssignmentUsed(ctx, code, username)
		if err != nil {
			return err
		}
		if !marked {
			return ErrDiscountUsed
		}
		s.logger.LogVoucherEvent(code, "used", map[string]interface{}{"username": username, "redemption": "user_assigned"})
		return nil
	}

	if discount.LimitReached() {
		return ErrDiscountExhausted
	}
	advanced, err := s.discountRepo.IncrementUsage(ctx, code)
	if err != nil {
		return err
	}
	if !advanced {
		return ErrDiscountExhausted
	}

	s.logger.LogVoucherEvent(code, "used", map[string]interface{}{"username": username, "redemption": "public"})
	return nil
}

func (s *discountService) AssignToUser(ctx context.Context, adminUser, username, code, notes string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return ErrUserNotFound
	}

	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil || !discount.IsActive {
		return ErrDiscountNotFound
	}
	if discount.IsExpired(s.now()) {
		return ErrDiscountExpired
	}

	now := s.now()
	assignment := &models.Assignment{
		Username:       username,
		DiscountCode:   code,
		CollectedAt:    now,
		AssignedAt:     now,
		AssignedBy:     adminUser,
		AssignmentType: models.AssignmentTypeManual,
		Notes:          notes,
	}
	added, err := s.discountRepo.PushAssignment(ctx, code, assignment)
	if err != nil {
		return err
	}
	if !added {
		return ErrAlreadyCollected
	}

	s.logger.LogVoucherEvent(code, "assigned", map[string]interface{}{
		"username":    username,
		"assigned_by": adminUser,
	})
	return nil
}

func (s *discountService) DeleteDiscount(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := s.discountRepo.Delete(ctx, code); err != nil {
		return ErrDiscountNotFound
	}
	return nil
}

// ResolveForPayment validates every code against redemption rules and
// the user's holdings. It never mutates anything.
func (s *discountService) ResolveForPayment(ctx context.Context, username string, codes []string) ([]*models.Discount, error) {
	resolved := make([]*models.Discount, 0, len(codes))
	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))

		discount, err := s.discountRepo.GetByCode(ctx, code)
		if err != nil || !discount.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrDiscountNotFound, code)
		}
		if discount.IsExpired(s.now()) {
			return nil, fmt.Errorf("%w: %s", ErrDiscountExpired, code)
		}
		if discount.LimitReached() {
			return nil, fmt.Errorf("%w: %s", ErrDiscountExhausted, code)
		}
		if assignment := discount.AssignmentFor(username); assignment != nil && assignment.IsUsed {
			return nil, fmt.Errorf("%w: %s", ErrDiscountUsed, code)
		}

		resolved = append(resolved, discount)
	}
	return resolved, nil
}

// ConsumeForPayment burns the codes a completed settlement used.
func (s *discountService) ConsumeForPayment(ctx context.Context, username string, codes []string) error {
	for _, code := range codes {
		if err := s.UseDiscount(ctx, username, code); err != nil {
			return fmt.Errorf("failed to consume discount %s: %w", code, err)
		}
	}
	return nil
}

func summarize(d *models.Discount, assignment *models.Assignment, now time.Time) VoucherSummary {
	s := VoucherSummary{
		Code:                d.Code,
		Percentage:          d.Percentage,
		Description:         d.Description,
		DetailedDescription: d.DetailedDescription,
		VoucherType:         string(d.VoucherType),
		ExpiresAt:           d.ExpiresAt,
		UsageLimit:          d.UsageLimit,
		UsedCount:           d.UsedCount,
		IsExpired:           d.IsExpired(now),
	}
	if assignment != nil {
		s.IsUsed = assignment.IsUsed
	}
	return s
}
