package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wricardo/lonely-knight/game/board"
)

// pathServiceImpl implements the PathService interface.
// Searches write scratch state into the board, so every operation touching a
// board takes the write lock.
type pathServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewPathService creates a new path service instance
func NewPathService(sessions SessionManager, configs ConfigManager) PathService {
	return &pathServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new session on the named board, or the default board
func (s *pathServiceImpl) CreateSession(ctx context.Context, boardID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *board.BoardConfig
	var err error
	if boardID != "" {
		config, err = s.configs.LoadConfig(boardID)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				available, listErr := s.configs.ListConfigs()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, info := range available {
						ids = append(ids, info.BoardID)
					}
					return nil, fmt.Errorf("board '%s' not found. Available boards: %v", boardID, ids)
				}
				return nil, fmt.Errorf("board '%s' not found. Use /api/boards to list available boards", boardID)
			}
			return nil, fmt.Errorf("failed to load board %s: %w", boardID, err)
		}
	} else {
		config = s.configs.GetDefault()
		boardID = s.configs.DefaultID()
	}

	sess, err := s.sessions.Create("", boardID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.WithFields(log.Fields{"session": sess.ID, "board": boardID}).Info("session created")
	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *pathServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *pathServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *pathServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// FindPath runs one search and records it in the session log
func (s *pathServiceImpl) FindPath(ctx context.Context, sessionID string, req PathRequest) (*PathResult, error) {
	algorithm, err := board.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	result := search(sess.Board, algorithm, req.Origin, req.Target, req.CheckTeleports)
	sess.Record(pathQuery(QueryPath, result))
	s.persist(sess)

	log.WithFields(log.Fields{
		"session":   sess.ID,
		"algorithm": algorithm,
		"origin":    req.Origin,
		"target":    req.Target,
		"found":     result.Found,
		"moves":     result.Moves,
		"cost":      result.Cost,
	}).Debug("path query")

	return result, nil
}

// ComparePaths runs every algorithm on the same endpoints
func (s *pathServiceImpl) ComparePaths(ctx context.Context, sessionID string, req PathRequest) (*CompareResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	result := &CompareResult{Origin: req.Origin, Target: req.Target}
	var cheapest, shortest *PathResult
	for _, algorithm := range []board.Algorithm{board.AnyPath, board.Wave, board.AStar} {
		r := search(sess.Board, algorithm, req.Origin, req.Target, req.CheckTeleports)
		result.Results = append(result.Results, r)
		if !r.Found {
			continue
		}
		if cheapest == nil || r.Cost < cheapest.Cost {
			cheapest = r
		}
		if shortest == nil || r.Moves < shortest.Moves {
			shortest = r
		}
	}
	if cheapest != nil {
		result.Cheapest = cheapest.Algorithm
		result.Shortest = shortest.Algorithm
	}

	q := QueryRecord{Kind: QueryCompare, Origin: &result.Origin, Target: &result.Target}
	if cheapest != nil {
		q.Found = true
		q.Algorithm = cheapest.Algorithm
		q.Moves = cheapest.Moves
		q.Cost = cheapest.Cost
	}
	sess.Record(q)
	s.persist(sess)

	return result, nil
}

// MoveKnight replays path on the board, leaving markers and one frame per step
func (s *pathServiceImpl) MoveKnight(ctx context.Context, sessionID string, path []board.Coordinate) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	frames, ok := sess.Board.Replay(path)
	result := &MoveResult{
		Valid:  ok,
		Path:   path,
		Steps:  len(frames),
		Frames: frames,
		Rows:   sess.Board.Rows(),
	}
	switch {
	case len(path) == 0:
		result.Message = "Path is empty"
	case ok:
		result.Message = fmt.Sprintf("Knight moved %d steps to %v", len(path)-1, path[len(path)-1])
	default:
		result.Message = fmt.Sprintf("Illegal move after %d steps", len(frames))
	}

	q := QueryRecord{Kind: QueryMove, Found: ok, Moves: len(frames), Detail: result.Message}
	if len(path) > 0 {
		q.Origin, q.Target = &path[0], &path[len(path)-1]
	}
	if ok {
		q.Cost = board.PathCost(sess.Board, path)
	}
	sess.Record(q)
	s.persist(sess)

	return result, nil
}

// ValidatePath checks a path without touching the board markers
func (s *pathServiceImpl) ValidatePath(ctx context.Context, sessionID string, path []board.Coordinate) (*ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	b := sess.Board
	result := &ValidationResult{
		Valid:      b.Validate(path),
		RouteValid: b.ValidateRoute(path),
		FailedStep: firstIllegalStep(b, path),
	}
	switch {
	case len(path) == 0:
		result.Message = "Path is empty"
	case result.Valid:
		result.Cost = board.PathCost(b, path)
		result.Message = fmt.Sprintf("Valid path of %d moves", len(path)-1)
	case result.RouteValid:
		result.Cost = board.PathCost(b, path)
		result.Message = "Valid only when hopping between teleports"
	case result.FailedStep == 0:
		result.Message = fmt.Sprintf("%v is off the board", path[0])
	default:
		result.Message = fmt.Sprintf("Illegal move %v -> %v", path[result.FailedStep-1], path[result.FailedStep])
	}

	q := QueryRecord{Kind: QueryValidate, Found: result.RouteValid, Cost: result.Cost, Detail: result.Message}
	if len(path) > 0 {
		q.Origin, q.Target = &path[0], &path[len(path)-1]
		q.Moves = len(path) - 1
	}
	sess.Record(q)
	s.persist(sess)

	return result, nil
}

// SetTerrain applies terrain changes to the session board
func (s *pathServiceImpl) SetTerrain(ctx context.Context, sessionID string, changes []TerrainChange) (*BoardState, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: no terrain changes", ErrInvalidRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.ApplyTerrain(changes); err != nil {
		return nil, err
	}

	sess.Record(QueryRecord{
		Kind:   QueryTerrain,
		Found:  true,
		Detail: fmt.Sprintf("%d cells changed", len(changes)),
	})
	s.persist(sess)

	return sess.State(), nil
}

// Reset restores the configured layout. The query log is kept.
func (s *pathServiceImpl) Reset(ctx context.Context, sessionID string) (*BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.ResetTerrain()
	sess.Record(QueryRecord{Kind: QueryReset, Found: true, Detail: "board reset to layout"})
	s.persist(sess)

	return sess.State(), nil
}

// GetBoardState returns the current board snapshot
func (s *pathServiceImpl) GetBoardState(ctx context.Context, sessionID string) (*BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.State(), nil
}

// GetQueryHistory returns paginated query history
func (s *pathServiceImpl) GetQueryHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Queries
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	queries := []QueryRecord{}
	if opts.Order == "desc" {
		// most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			queries = append(queries, history[i])
		}
	} else if start < total {
		queries = append(queries, history[start:end]...)
	}

	return &HistoryResponse{
		Queries:      queries,
		TotalQueries: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListBoards returns the stored board layouts
func (s *pathServiceImpl) ListBoards(ctx context.Context) ([]*BoardInfo, error) {
	return s.configs.ListConfigs()
}

// LoadBoard loads a stored board layout
func (s *pathServiceImpl) LoadBoard(ctx context.Context, boardID string) (*board.BoardConfig, error) {
	return s.configs.LoadConfig(boardID)
}

// SaveBoard validates and stores a board layout
func (s *pathServiceImpl) SaveBoard(ctx context.Context, boardID string, config *board.BoardConfig) error {
	return s.configs.SaveConfig(boardID, config)
}

// touch looks a session up and refreshes its access time. Callers hold the
// write lock, since sessionInfo reads the access time under the read lock.
func (s *pathServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

func (s *pathServiceImpl) persist(sess *Session) {
	if err := s.sessions.Save(sess.ID); err != nil {
		log.WithError(err).WithField("session", sess.ID).Warn("failed to persist session")
	}
}

// IsNotFound reports whether err comes from a missing session or board
func IsNotFound(err error) bool {
	return err != nil && !errors.Is(err, ErrInvalidRequest) && strings.Contains(err.Error(), "not found")
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		BoardID:        sess.BoardID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		State:          sess.State(),
		Config:         sess.Config,
	}
}

// search runs one algorithm and describes its outcome
func search(b *board.Board, algorithm board.Algorithm, origin, target board.Coordinate, checkTeleports bool) *PathResult {
	start := time.Now()

	var path []board.Coordinate
	var found bool
	switch algorithm {
	case board.AnyPath:
		path, found = b.CalculateAnyPath(origin, target)
	case board.Wave:
		path, found = b.CalculateShortestPath(origin, target)
	default:
		path, found = b.CalculateShortestPathAStar(origin, target, checkTeleports)
	}

	result := &PathResult{
		Algorithm: algorithm,
		Origin:    origin,
		Target:    target,
		Found:     found,
		ElapsedUS: time.Since(start).Microseconds(),
	}

	if !found {
		result.Message = unreachableReason(b, origin, target)
		return result
	}

	result.Path = path
	result.Moves = len(path) - 1
	result.Cost = board.PathCost(b, path)
	result.Valid = b.Validate(path)
	result.Teleported = !result.Valid && b.ValidateRoute(path)
	result.Message = fmt.Sprintf("Found %d-move path with cost %d", result.Moves, result.Cost)
	if result.Teleported {
		result.Message += " through the teleports"
	}
	return result
}

func unreachableReason(b *board.Board, origin, target board.Coordinate) string {
	switch {
	case !b.OnBoard(origin):
		return fmt.Sprintf("Origin %v is off the board", origin)
	case !b.OnBoard(target):
		return fmt.Sprintf("Target %v is off the board", target)
	case !b.TerrainAt(target).Passable():
		return fmt.Sprintf("Target %v is %s", target, b.TerrainAt(target))
	}
	return fmt.Sprintf("No path from %v to %v", origin, target)
}

func pathQuery(kind string, r *PathResult) QueryRecord {
	origin, target := r.Origin, r.Target
	return QueryRecord{
		Kind:      kind,
		Algorithm: r.Algorithm,
		Origin:    &origin,
		Target:    &target,
		Found:     r.Found,
		Moves:     r.Moves,
		Cost:      r.Cost,
	}
}

// firstIllegalStep returns the index of the first cell that cannot be reached
// from its predecessor by a knight move, or -1 when every step is legal.
func firstIllegalStep(b *board.Board, path []board.Coordinate) int {
	if len(path) == 0 {
		return -1
	}
	if !b.OnBoard(path[0]) {
		return 0
	}
	for i := 1; i < len(path); i++ {
		if !b.IsLegalMove(path[i-1], path[i]) {
			return i
		}
	}
	return -1
}
