package services

import (
  "context"

  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/repos"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type DebtorSummary struct {
  ClientID    string      `json:"client_id"`
  Name        string      `json:"name"`
  Debt        float64     `json:"debt"`
  Soul        soul.Vector `json:"soul"`
  LastContact *string     `json:"last_contact,omitempty"`
}

type Overview struct {
  TotalClients        int             `json:"total_clients"`
  ActiveDebtors       int             `json:"active_debtors"`
  TotalDebt           float64         `json:"total_debt"`
  ActiveConversations int             `json:"active_conversations"`
  ClosedConversations int             `json:"closed_conversations"`
  TopDebtors          []DebtorSummary `json:"top_debtors"`
}

type ReportService interface {
  Overview(ctx context.Context) (*Overview, error)
}

type reportService struct {
  db               *gorm.DB
  log              *logger.Logger
  clientRepo       repos.ClientRepo
  conversationRepo repos.ConversationRepo
}

func NewReportService(db *gorm.DB, log *logger.Logger, clientRepo repos.ClientRepo, conversationRepo repos.ConversationRepo) ReportService {
  serviceLog := log.With("service", "ReportService")
  return &reportService{
    db:               db,
    log:              serviceLog,
    clientRepo:       clientRepo,
    conversationRepo: conversationRepo,
  }
}

const topDebtorCount = 5

// Overview fans the three independent queries out concurrently; the
// dashboard polls this endpoint so latency is additive otherwise.
func (rs *reportService) Overview(ctx context.Context) (*Overview, error) {
  var (
    clients []*types.Client
    active  []*types.Conversation
    closed  []*types.Conversation
  )

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    var err error
    clients, err = rs.clientRepo.GetAll(gctx, nil)
    return err
  })
  g.Go(func() error {
    var err error
    active, err = rs.conversationRepo.ListActive(gctx, nil, nil, 0)
    return err
  })
  g.Go(func() error {
    var err error
    closed, err = rs.conversationRepo.ListByStatus(gctx, nil, types.ConversationStatusClosed, nil, 0)
    return err
  })
  if err := g.Wait(); err != nil {
    rs.log.Error("Overview query failed", "error", err)
    return nil, err
  }

  overview := &Overview{
    TotalClients:        len(clients),
    ActiveConversations: len(active),
    ClosedConversations: len(closed),
    TopDebtors:          []DebtorSummary{},
  }

  debtors := make([]*types.Client, 0, len(clients))
  for _, c := range clients {
    if c.Status == types.ClientStatusActive && c.Debt > 0 {
      debtors = append(debtors, c)
      overview.TotalDebt += c.Debt
    }
  }
  overview.ActiveDebtors = len(debtors)

  for i := 0; i < len(debtors); i++ {
    for j := i + 1; j < len(debtors); j++ {
      if debtors[j].Debt > debtors[i].Debt {
        debtors[i], debtors[j] = debtors[j], debtors[i]
      }
    }
  }
  for i, c := range debtors {
    if i == topDebtorCount {
      break
    }
    summary := DebtorSummary{
      ClientID: c.ID.String(),
      Name:     c.Name,
      Debt:     c.Debt,
      Soul:     c.Soul,
    }
    if c.LastContact != nil {
      formatted := c.LastContact.Format("2006-01-02")
      summary.LastContact = &formatted
    }
    overview.TopDebtors = append(overview.TopDebtors, summary)
  }
  return overview, nil
}
