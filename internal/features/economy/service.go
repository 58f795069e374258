// Package economy — service.go содержит бизнес-логику журнала операций.
package economy

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"levelbot.ru/game-bot/internal/common"
)

// Service управляет денежными операциями и историей.
type Service struct {
	repo *Repository
}

// NewService создаёт новый сервис экономики.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Credit начисляет деньги игроку (бонусы, админ-выдачи).
func (s *Service) Credit(ctx context.Context, userID int64, amount float64, txType string, meta any) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return s.repo.Credit(ctx, userID, amount, txType, meta)
}

// Debit списывает деньги (админ-изъятия и прочие траты вне магазина).
func (s *Service) Debit(ctx context.Context, userID int64, amount float64, txType string, meta any) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	err := s.repo.Debit(ctx, userID, amount, txType, meta)
	if err == nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"amount":  amount,
			"type":    txType,
		}).Info("Списание выполнено")
	}
	return err
}

// GetTransactionHistory возвращает форматированную историю последних операций.
func (s *Service) GetTransactionHistory(ctx context.Context, userID int64) (string, error) {
	transactions, err := s.repo.GetTransactions(ctx, userID, 10)
	if err != nil {
		return "", err
	}

	if len(transactions) == 0 {
		return "📋 У вас пока нет операций", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Последние %d операций:\n\n", len(transactions)))
	for i, tx := range transactions {
		sign := "+"
		if tx.Amount < 0 {
			sign = ""
		}
		sb.WriteString(fmt.Sprintf("%d. %s | %s%s | %s\n",
			i+1,
			common.FormatDateTime(tx.CreatedAt),
			sign,
			common.FormatMoney(tx.Amount),
			txTypeLabel(tx.Type),
		))
	}
	return sb.String(), nil
}

// txTypeLabel переводит тип операции в подпись для игрока.
func txTypeLabel(txType string) string {
	switch txType {
	case TxTypeWorkIncome:
		return "работа"
	case TxTypeFarmIncome:
		return "урожай"
	case TxTypeFarmUpgrade:
		return "улучшение фермы"
	case TxTypeFarmExpand:
		return "расширение фермы"
	case TxTypePurchase:
		return "покупка"
	case TxTypeReferralBonus:
		return "реферальный бонус"
	case TxTypeCryptoBuy:
		return "покупка крипты"
	case TxTypeCryptoSell:
		return "продажа крипты"
	case TxTypeAdminGive:
		return "выдача админом"
	case TxTypeAdminTake:
		return "изъятие админом"
	default:
		return txType
	}
}
