package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/easystock/easystock-api/internal/cache"
	"github.com/easystock/easystock-api/internal/models"
	"github.com/easystock/easystock-api/internal/repository"
	"github.com/easystock/easystock-api/internal/utils"
	"github.com/easystock/easystock-api/pkg/linemsg"
)

var verifyCodePattern = regexp.MustCompile(`^\d{6}$`)

// LineService bridges the application to the LINE Messaging API: it delivers
// stock alerts to connected users and handles incoming webhook commands.
// When the integration is not configured, every outbound method is a no-op
// and user-facing operations return ErrLineUnavailable.
type LineService struct {
	client        *linemsg.Client
	enabled       bool
	notifications *repository.NotificationRepository
	users         *repository.UserRepository
	products      *repository.ProductRepository
	verifyCache   *cache.VerifyCache
	threshold     int
}

// NewLineService constructs a LineService. client may be nil when the
// integration is disabled.
func NewLineService(client *linemsg.Client, enabled bool, notifications *repository.NotificationRepository, users *repository.UserRepository, products *repository.ProductRepository, verifyCache *cache.VerifyCache, lowStockThreshold int) *LineService {
	return &LineService{
		client:        client,
		enabled:       enabled,
		notifications: notifications,
		users:         users,
		products:      products,
		verifyCache:   verifyCache,
		threshold:     lowStockThreshold,
	}
}

// Enabled reports whether the integration was configured at startup.
func (s *LineService) Enabled() bool {
	return s.enabled
}

// pushToConnected sends a text to every connected LINE account, logging and
// swallowing delivery failures.
func (s *LineService) pushToConnected(ctx context.Context, text string) {
	if !s.enabled {
		return
	}
	ids, err := s.notifications.ConnectedLineIDs()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load connected LINE users")
		return
	}
	for _, id := range ids {
		if err := s.client.PushText(ctx, id, text); err != nil {
			log.Warn().Err(err).Str("line_user_id", id).Msg("LINE push failed")
		}
	}
}

// NotifyStockOut announces an issuance line.
func (s *LineService) NotifyStockOut(ctx context.Context, p *models.Product, qty int, issuer string) {
	text := fmt.Sprintf("📤 เบิกสินค้า: %s (%s)\nจำนวน: %d %s\nคงเหลือ: %d", p.Title, p.Code, qty, p.Unit, p.Stock)
	if issuer != "" {
		text += "\nผู้เบิก: " + issuer
	}
	s.pushToConnected(ctx, text)
}

// NotifyStockIn announces a receipt or corrective increase.
func (s *LineService) NotifyStockIn(ctx context.Context, p *models.Product, qty int, actor string) {
	text := fmt.Sprintf("📥 รับสินค้าเข้า: %s (%s)\nจำนวน: +%d %s\nคงเหลือ: %d", p.Title, p.Code, qty, p.Unit, p.Stock)
	if actor != "" {
		text += "\nผู้บันทึก: " + actor
	}
	s.pushToConnected(ctx, text)
}

// NotifyOutOfStock warns that a product hit zero.
func (s *LineService) NotifyOutOfStock(ctx context.Context, p *models.Product) {
	s.pushToConnected(ctx, fmt.Sprintf("🚨 สินค้าหมด: %s (%s)\nกรุณาสั่งซื้อเพิ่ม", p.Title, p.Code))
}

// NotifyLowStock warns that a product is running low.
func (s *LineService) NotifyLowStock(ctx context.Context, p *models.Product) {
	s.pushToConnected(ctx, fmt.Sprintf("⚠️ สินค้าใกล้หมด: %s (%s)\nคงเหลือ: %d %s", p.Title, p.Code, p.Stock, p.Unit))
}

// LowStockSweep pushes one summary alert listing every low-stock product.
// Returns the number of products reported.
func (s *LineService) LowStockSweep(ctx context.Context) (int, error) {
	if !s.enabled {
		return 0, utils.ErrLineUnavailable
	}
	products, err := s.products.GetLowStock(s.threshold)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}

	var b strings.Builder
	b.WriteString("⚠️ รายการสินค้าใกล้หมด\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s): เหลือ %d %s\n", p.Title, p.Code, p.Stock, p.Unit)
	}
	s.pushToConnected(ctx, strings.TrimRight(b.String(), "\n"))
	return len(products), nil
}

// GenerateConnectCode issues a 6-digit verification code for the user and
// stores it in Redis with a TTL. Typing the code into the chat links the
// accounts.
func (s *LineService) GenerateConnectCode(ctx context.Context, userID int64) (string, error) {
	if !s.enabled {
		return "", utils.ErrLineUnavailable
	}
	// Ensure the settings row exists before a code is handed out.
	if _, err := s.notifications.GetOrCreate(userID); err != nil {
		return "", err
	}

	code, err := utils.GenerateVerifyCode()
	if err != nil {
		return "", err
	}
	if err := s.verifyCache.Set(ctx, code, userID); err != nil {
		return "", err
	}
	return code, nil
}

// Status returns the user's connection state, creating the settings row on
// first use.
func (s *LineService) Status(userID int64) (*models.NotificationSettings, error) {
	return s.notifications.GetOrCreate(userID)
}

// Disconnect unlinks the user's LINE account.
func (s *LineService) Disconnect(userID int64) error {
	return s.notifications.Unlink(userID)
}

// SendTest pushes a test message to the user's own LINE account.
func (s *LineService) SendTest(ctx context.Context, userID int64) error {
	if !s.enabled {
		return utils.ErrLineUnavailable
	}
	settings, err := s.notifications.GetOrCreate(userID)
	if err != nil {
		return err
	}
	if !settings.Connected() {
		return fmt.Errorf("LINE account not connected: %w", utils.ErrValidation)
	}
	return s.client.PushText(ctx, *settings.LineUserID, "✅ ทดสอบการแจ้งเตือนสำเร็จ ระบบพร้อมใช้งาน")
}

// Profile fetches the LINE display profile of the user's linked account.
func (s *LineService) Profile(ctx context.Context, userID int64) (*linemsg.Profile, error) {
	if !s.enabled {
		return nil, utils.ErrLineUnavailable
	}
	settings, err := s.notifications.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if !settings.Connected() {
		return nil, fmt.Errorf("LINE account not connected: %w", utils.ErrValidation)
	}
	return s.client.GetProfile(ctx, *settings.LineUserID)
}

// ConnectedUsers returns all linked accounts joined with their owners.
func (s *LineService) ConnectedUsers() ([]models.NotificationSettings, error) {
	return s.notifications.GetConnected()
}

// Broadcast pushes a message to every friend of the bot.
func (s *LineService) Broadcast(ctx context.Context, text string) error {
	if !s.enabled {
		return utils.ErrLineUnavailable
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message must not be empty: %w", utils.ErrValidation)
	}
	return s.client.BroadcastText(ctx, text)
}

// SendToUsers pushes a message to selected application users. Users without
// a linked LINE account are skipped; returns how many were reached.
func (s *LineService) SendToUsers(ctx context.Context, userIDs []int64, text string) (int, error) {
	if !s.enabled {
		return 0, utils.ErrLineUnavailable
	}
	if strings.TrimSpace(text) == "" || len(userIDs) == 0 {
		return 0, fmt.Errorf("message and recipients are required: %w", utils.ErrValidation)
	}

	sent := 0
	for _, userID := range userIDs {
		settings, err := s.notifications.GetOrCreate(userID)
		if err != nil || !settings.Connected() {
			continue
		}
		if err := s.client.PushText(ctx, *settings.LineUserID, text); err != nil {
			log.Warn().Err(err).Int64("user_id", userID).Msg("LINE push failed")
			continue
		}
		sent++
	}
	return sent, nil
}

// HandleWebhookEvent processes one incoming LINE event. Text messages are
// interpreted as commands: a 6-digit code links the chat account to the
// application user who generated it; anything else gets usage instructions.
func (s *LineService) HandleWebhookEvent(ctx context.Context, event *linemsg.WebhookEvent) {
	if event.Type != "message" || event.Message == nil || event.Message.Type != "text" {
		return
	}
	text := strings.TrimSpace(event.Message.Text)
	lineUserID := event.Source.UserID

	if verifyCodePattern.MatchString(text) {
		s.redeemCode(ctx, event.ReplyToken, lineUserID, text)
		return
	}

	switch strings.ToLower(text) {
	case "id", "myid", "whoami":
		s.reply(ctx, event.ReplyToken, "LINE ID ของคุณ: "+lineUserID)
	default:
		s.reply(ctx, event.ReplyToken,
			"สวัสดีครับ 👋\nพิมพ์รหัส 6 หลักจากหน้าตั้งค่าเพื่อเชื่อมต่อบัญชี\nพิมพ์ id เพื่อดู LINE ID ของคุณ")
	}
}

func (s *LineService) redeemCode(ctx context.Context, replyToken, lineUserID, code string) {
	userID, err := s.verifyCache.Redeem(ctx, code)
	if err != nil {
		s.reply(ctx, replyToken, "❌ รหัสไม่ถูกต้องหรือหมดอายุ กรุณาขอรหัสใหม่")
		return
	}

	if err := s.notifications.Link(userID, lineUserID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to link LINE account")
		s.reply(ctx, replyToken, "❌ เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง")
		return
	}

	name := ""
	if u, err := s.users.GetByID(userID); err == nil {
		name = u.DisplayName()
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to load linked user")
	}

	log.Info().Int64("user_id", userID).Str("line_user_id", lineUserID).Msg("LINE account linked")
	s.reply(ctx, replyToken, fmt.Sprintf("✅ เชื่อมต่อบัญชี %s สำเร็จ\nคุณจะได้รับการแจ้งเตือนสต็อกจากระบบ", name))
}

func (s *LineService) reply(ctx context.Context, replyToken, text string) {
	if !s.enabled || replyToken == "" {
		return
	}
	if err := s.client.ReplyText(ctx, replyToken, text); err != nil {
		log.Warn().Err(err).Msg("LINE reply failed")
	}
}
