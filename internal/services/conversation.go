package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/repos"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type TurnInput struct {
  Sender  string     `json:"sender"`
  Message string     `json:"message"`
  Phase   soul.Phase `json:"phase"`
  Event   soul.Event `json:"event"`
}

// ManualTurnInput is the post-hoc editing variant: deltas apply only when
// supplied explicitly, and the client record is only touched on request.
type ManualTurnInput struct {
  TurnInput
  Deltas           *soul.Delta `json:"deltas"`
  UpdateClientSoul bool        `json:"update_client_soul"`
}

type TurnPatch struct {
  Sender  *string     `json:"sender"`
  Message *string     `json:"message"`
  Phase   *soul.Phase `json:"phase"`
  Event   *soul.Event `json:"event"`
}

type AppendResult struct {
  Turn           types.Turn     `json:"turn"`
  Turns          types.TurnList `json:"turns"`
  CurrentSoul    soul.Vector    `json:"current_soul"`
  SuggestedPhase soul.Phase     `json:"suggested_phase"`
}

type ConversationService interface {
  Create(ctx context.Context, clientID, agentID uuid.UUID, initialSoul *soul.Vector) (*types.Conversation, error)
  Get(ctx context.Context, conversationID uuid.UUID) (*types.Conversation, error)
  GetDetails(ctx context.Context, conversationID uuid.UUID) (*types.Conversation, error)
  AppendLiveTurn(ctx context.Context, conversationID uuid.UUID, in TurnInput) (*AppendResult, error)
  AppendManualTurn(ctx context.Context, conversationID uuid.UUID, in ManualTurnInput) (*AppendResult, error)
  EditTurn(ctx context.Context, conversationID, turnID uuid.UUID, patch TurnPatch) (types.TurnList, error)
  DeleteTurn(ctx context.Context, conversationID, turnID uuid.UUID) (types.TurnList, error)
  Close(ctx context.Context, conversationID uuid.UUID, summary types.Summary) error
  UpdateStatus(ctx context.Context, conversationID uuid.UUID, status string, isActive bool) error
  ToggleActive(ctx context.Context, conversationID uuid.UUID) (*types.Conversation, error)
  SetSoul(ctx context.Context, conversationID uuid.UUID, values soul.Values) (soul.Vector, error)
  Delete(ctx context.Context, conversationID uuid.UUID) error
  ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*types.Conversation, error)
  ListNew(ctx context.Context, agentID *uuid.UUID, limit int) ([]*types.Conversation, error)
  ListActive(ctx context.Context, agentID *uuid.UUID, limit int) ([]*types.Conversation, error)
  ListActiveByClient(ctx context.Context, clientID uuid.UUID) ([]*types.Conversation, error)
  ListClosed(ctx context.Context, agentID *uuid.UUID, limit int) ([]*types.Conversation, error)
  ListUpcoming(ctx context.Context, limit int) ([]*types.Conversation, error)
}

type conversationService struct {
  db               *gorm.DB
  log              *logger.Logger
  conversationRepo repos.ConversationRepo
  clientRepo       repos.ClientRepo
  deltaTable       soul.Table
}

func NewConversationService(db *gorm.DB, log *logger.Logger, conversationRepo repos.ConversationRepo, clientRepo repos.ClientRepo, deltaTable soul.Table) ConversationService {
  serviceLog := log.With("service", "ConversationService")
  if deltaTable == nil {
    deltaTable = soul.DefaultTable()
  }
  return &conversationService{
    db:               db,
    log:              serviceLog,
    conversationRepo: conversationRepo,
    clientRepo:       clientRepo,
    deltaTable:       deltaTable,
  }
}

func (cs *conversationService) Create(ctx context.Context, clientID, agentID uuid.UUID, initialSoul *soul.Vector) (*types.Conversation, error) {
  client, err := cs.clientRepo.GetByID(ctx, nil, clientID)
  if err != nil {
    return nil, fmt.Errorf("fetch client: %w", err)
  }
  if client == nil {
    return nil, notFound("client")
  }

  now := time.Now().UTC()
  if err := cs.clientRepo.Update(ctx, nil, clientID, map[string]any{"last_contact": now}); err != nil {
    return nil, fmt.Errorf("record client contact: %w", err)
  }

  initial := client.Soul
  if initialSoul != nil {
    initial = *initialSoul
  }

  conversation := &types.Conversation{
    ID:          uuid.New(),
    ClientID:    clientID,
    ClientName:  client.Name,
    AgentID:     agentID,
    Status:      types.ConversationStatusNew,
    IsActive:    true,
    InitialSoul: initial,
    CurrentSoul: initial,
    Turns:       types.TurnList{},
    StartedAt:   now,
    UpdatedAt:   now,
  }

  created, err := cs.conversationRepo.Create(ctx, nil, conversation)
  if err != nil {
    cs.log.Error("Failed to create conversation", "error", err)
    return nil, fmt.Errorf("create conversation: %w", err)
  }
  cs.log.Info("Conversation created", "conversation_id", created.ID, "client_id", clientID)
  return created, nil
}

func (cs *conversationService) Get(ctx context.Context, conversationID uuid.UUID) (*types.Conversation, error) {
  conversation, err := cs.conversationRepo.GetByID(ctx, nil, conversationID)
  if err != nil {
    return nil, fmt.Errorf("fetch conversation: %w", err)
  }
  if conversation == nil {
    return nil, notFound("conversation")
  }
  return conversation, nil
}

func (cs *conversationService) GetDetails(ctx context.Context, conversationID uuid.UUID) (*types.Conversation, error) {
  conversation, err := cs.Get(ctx, conversationID)
  if err != nil {
    return nil, err
  }
  client, err := cs.clientRepo.GetByID(ctx, nil, conversation.ClientID)
  if err != nil {
    cs.log.Warn("Failed to load client for conversation details", "conversation_id", conversationID, "error", err)
    return conversation, nil
  }
  conversation.Client = client
  return conversation, nil
}

// AppendLiveTurn records a turn captured during a live call. The event's
// table delta is always applied to the working soul, and when the client is
// the one speaking the result is written back to the client record as well.
func (cs *conversationService) AppendLiveTurn(ctx context.Context, conversationID uuid.UUID, in TurnInput) (*AppendResult, error) {
  conversation, err := cs.Get(ctx, conversationID)
  if err != nil {
    return nil, err
  }
  if err := validateTurnInput(in); err != nil {
    return nil, err
  }

  event := in.Event
  if event == "" {
    event = soul.EventNeutral
  }

  deltas := soul.ZeroDelta()
  currentSoul := conversation.CurrentSoul
  if event != soul.EventNeutral {
    deltas = cs.deltaTable.DeltaFor(event)
    currentSoul = soul.Apply(currentSoul, deltas)
  }

  turn := newTurn(in, event, deltas, currentSoul)
  turns := append(conversation.Turns, turn)

  status := conversation.Status
  if status == types.ConversationStatusNew {
    status = types.ConversationStatusActive
  }

  fields := map[string]any{
    "turns":     turns,
    "status":    status,
    "is_active": true,
  }
  mergeFields(fields, soulFields("current_soul_", currentSoul))
  if err := cs.conversationRepo.Update(ctx, nil, conversationID, fields); err != nil {
    return nil, fmt.Errorf("append turn: %w", err)
  }

  if turn.Sender == types.SenderClient && event != soul.EventNeutral {
    if err := cs.clientRepo.UpdateSoul(ctx, nil, conversation.ClientID, currentSoul); err != nil {
      return nil, fmt.Errorf("propagate client soul: %w", err)
    }
  }

  cs.log.Debug("Live turn appended", "conversation_id", conversationID, "event", event, "sender", turn.Sender)
  return &AppendResult{
    Turn:           turn,
    Turns:          turns,
    CurrentSoul:    currentSoul,
    SuggestedPhase: soul.SuggestNext(turn.Phase, event),
  }, nil
}

// AppendManualTurn records a turn entered after the fact. Historical edits
// must not silently rewrite live client state: the delta applies only when
// supplied explicitly, and the client record only changes when the caller
// opts in.
func (cs *conversationService) AppendManualTurn(ctx context.Context, conversationID uuid.UUID, in ManualTurnInput) (*AppendResult, error) {
  conversation, err := cs.Get(ctx, conversationID)
  if err != nil {
    return nil, err
  }
  if err := validateTurnInput(in.TurnInput); err != nil {
    return nil, err
  }

  event := in.Event
  if event == "" {
    event = soul.EventNeutral
  }

  deltas := soul.ZeroDelta()
  currentSoul := conversation.CurrentSoul
  if in.Deltas != nil {
    deltas = *in.Deltas
    currentSoul = soul.Apply(currentSoul, deltas)
  }

  turn := newTurn(in.TurnInput, event, deltas, currentSoul)
  turn.IsManual = true
  turns := append(conversation.Turns, turn)

  fields := map[string]any{"turns": turns}
  mergeFields(fields, soulFields("current_soul_", currentSoul))
  if err := cs.conversationRepo.Update(ctx, nil, conversationID, fields); err != nil {
    return nil, fmt.Errorf("append manual turn: %w", err)
  }

  if in.UpdateClientSoul && in.Deltas != nil {
    if err := cs.clientRepo.UpdateSoul(ctx, nil, conversation.ClientID, currentSoul); err != nil {
      return nil, fmt.Errorf("propagate client soul: %w", err)
    }
  }

  cs.log.Debug("Manual turn appended", "conversation_id", conversationID, "event", event, "propagated", in.UpdateClientSoul)
  return &AppendResult{
    Turn:           turn,
    Turns:          turns,
    CurrentSoul:    currentSoul,
    SuggestedPhase: soul.SuggestNext(turn.Phase, event),
  }, nil
}

// EditTurn replaces fields of the matching turn in place and marks it
// edited. A missing turn id is a NotFound error, stricter than the original
// silent no-op.
func (cs *conversationService) EditTurn(ctx context.Context, conversationID, turnID uuid.UUID, patch TurnPatch) (types.TurnList, error) {
  conversation, err := cs.Get(ctx, conversationID)
  if err != nil {
    return nil, err
  }

  idx := -1
  for i := range conversation.Turns {
    if conversation.Turns[i].ID == turnID {
      idx = i
      break
    }
  }
  if idx < 0 {
    return nil, notFound("turn")
  }

  turn := conversation.Turns[idx]
  if patch.Sender != nil {
    turn.Sender = *patch.Sender
  }
  if patch.Message != nil {
    turn.Message = *patch.Message
  }
  if patch.Phase != nil && *patch.Phase != "" {
    turn.Phase = *patch.Phase
  }
  if patch.Event != nil {
    turn.Event = *patch.Event
  }
  now := time.Now().UTC()
  turn.IsEdited = true
  turn.EditedAt = &now
  conversation.Turns[idx] = turn

  if err := cs.conversationRepo.Update(ctx, nil, conversationID, map[string]any{"turns": conversation.Turns}); err != nil {
    return nil, fmt.Errorf("edit turn: %w", err)
  }
  return conversation.Turns, nil
}

func (cs *conversationService) DeleteTurn(ctx context.Context, conversationID, turnID uuid.UUID) (types.TurnList, error) {
  conversation, err := cs.Get(ctx, conversationID)
  if err != nil {
    return nil, err
  }

  turns := make(types.TurnList, 0, len(conversation.Turns))
  for _, t := range conversation.Turns {
    if t.ID != turnID {
      turns = append(turns, t)
    }
  }
  if len(turns) == len(conversation.Turns) {
    return nil, notFound("turn")
  }

  if err := cs.conversationRepo.Update(ctx, nil, conversationID, map[string]any{"turns": turns}); err != nil {
    return nil, fmt.Errorf("delete turn: %w", err)
  }
  return turns, nil
}

// Close ends the conversation and copies the working soul back onto the
// client record as the new baseline.
func (cs *conversationService) Close(ctx context.Context, conversationID uuid.UUID, summary types.Summary) error {
  if strings.TrimSpace(summary.Result) == "" {
    return invalid("summary result required")
  }
  conversation, err := cs.Get(ctx, conversationID)
  if err != nil {
    return err
  }

  now := time.Now().UTC()
  summary.CreatedAt = now

  fields := map[string]any{
    "status":    types.ConversationStatusClosed,
    "is_active": false,
    "closed_at": now,
    "summary":   &summary,
  }
  if summary.NextActionDate != nil {
    fields["next_action_date"] = *summary.NextActionDate
  }
  if err := cs.conversationRepo.Update(ctx, nil, conversationID, fields); err != nil {
    return fmt.Errorf("close conversation: %w", err)
  }

  if err := cs.clientRepo.UpdateSoul(ctx, nil, conversation.ClientID, conversation.CurrentSoul); err != nil {
    return fmt.Errorf("propagate final soul: %w", err)
  }

  cs.log.Info("Conversation closed", "conversation_id", conversationID, "result", summary.Result)
  return nil
}

func (cs *conversationService) UpdateStatus(ctx context.Context, conversationID uuid.UUID, status string, isActive bool) error {
  if !types.ValidConversationStatus(status) {
    return invalid(fmt.Sprintf("unknown conversation status %q", status))
  }
  if _, err := cs.Get(ctx, conversationID); err != nil {
    return err
  }
  return cs.conversationRepo.Update(ctx, nil, conversationID, map[string]any{
    "status":    status,
    "is_active": isActive,
  })
}

// ToggleActive flips the activity flag. Reactivating a conversation parked
// as inactive also restores status=active; deactivating leaves status alone,
// so status=active with is_active=false is a reachable and valid state.
func (cs *conversationService) ToggleActive(ctx context.Context, conversationID uuid.UUID) (*types.Conversation, error) {
  conversation, err := cs.Get(ctx, conversationID)
  if err != nil {
    return nil, err
  }

  newActive := !conversation.IsActive
  fields := map[string]any{"is_active": newActive}
  if newActive && conversation.Status == types.ConversationStatusInactive {
    fields["status"] = types.ConversationStatusActive
  }
  if err := cs.conversationRepo.Update(ctx, nil, conversationID, fields); err != nil {
    return nil, fmt.Errorf("toggle conversation activity: %w", err)
  }
  return cs.Get(ctx, conversationID)
}

// SetSoul overwrites the working soul (direct-set semantics, unspecified
// dimensions reset to midpoint) and propagates the result to the client.
func (cs *conversationService) SetSoul(ctx context.Context, conversationID uuid.UUID, values soul.Values) (soul.Vector, error) {
  conversation, err := cs.Get(ctx, conversationID)
  if err != nil {
    return soul.Vector{}, err
  }

  updated := soul.SetDirect(values)
  if err := cs.conversationRepo.Update(ctx, nil, conversationID, soulFields("current_soul_", updated)); err != nil {
    return soul.Vector{}, fmt.Errorf("set conversation soul: %w", err)
  }
  if err := cs.clientRepo.UpdateSoul(ctx, nil, conversation.ClientID, updated); err != nil {
    return soul.Vector{}, fmt.Errorf("propagate client soul: %w", err)
  }
  return updated, nil
}

func (cs *conversationService) Delete(ctx context.Context, conversationID uuid.UUID) error {
  if _, err := cs.Get(ctx, conversationID); err != nil {
    return err
  }
  if err := cs.conversationRepo.Delete(ctx, nil, conversationID); err != nil {
    return fmt.Errorf("delete conversation: %w", err)
  }
  cs.log.Info("Conversation hard-deleted", "conversation_id", conversationID)
  return nil
}

func (cs *conversationService) ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*types.Conversation, error) {
  return cs.conversationRepo.ListByClient(ctx, nil, clientID, limit)
}

func (cs *conversationService) ListNew(ctx context.Context, agentID *uuid.UUID, limit int) ([]*types.Conversation, error) {
  return cs.conversationRepo.ListByStatus(ctx, nil, types.ConversationStatusNew, agentID, limit)
}

func (cs *conversationService) ListActive(ctx context.Context, agentID *uuid.UUID, limit int) ([]*types.Conversation, error) {
  return cs.conversationRepo.ListActive(ctx, nil, agentID, limit)
}

func (cs *conversationService) ListActiveByClient(ctx context.Context, clientID uuid.UUID) ([]*types.Conversation, error) {
  return cs.conversationRepo.ListActiveByClient(ctx, nil, clientID)
}

func (cs *conversationService) ListClosed(ctx context.Context, agentID *uuid.UUID, limit int) ([]*types.Conversation, error) {
  return cs.conversationRepo.ListByStatus(ctx, nil, types.ConversationStatusClosed, agentID, limit)
}

func (cs *conversationService) ListUpcoming(ctx context.Context, limit int) ([]*types.Conversation, error) {
  return cs.conversationRepo.ListUpcoming(ctx, nil, limit)
}

func validateTurnInput(in TurnInput) error {
  if in.Sender != types.SenderAgent && in.Sender != types.SenderClient {
    return invalid(fmt.Sprintf("unknown sender %q", in.Sender))
  }
  if in.Phase != "" && !soul.ValidPhase(in.Phase) {
    return invalid(fmt.Sprintf("unknown phase %q", in.Phase))
  }
  return nil
}

func newTurn(in TurnInput, event soul.Event, deltas soul.Delta, currentSoul soul.Vector) types.Turn {
  phase := in.Phase
  if phase == "" {
    phase = soul.PhaseNegotiation
  }
  return types.Turn{
    ID:          uuid.New(),
    Sender:      in.Sender,
    Message:     in.Message,
    Timestamp:   time.Now().UTC(),
    Phase:       phase,
    Event:       event,
    Deltas:      deltas,
    CurrentSoul: currentSoul,
  }
}
