package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordcost/internal/logger"
	"github.com/bastiangx/wordcost/internal/utils"
	"github.com/bastiangx/wordcost/pkg/cache"
	"github.com/bastiangx/wordcost/pkg/config"
	"github.com/bastiangx/wordcost/pkg/morph"
	"github.com/bastiangx/wordcost/pkg/problem"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Lexicon is the dictionary the server answers from.
type Lexicon interface {
	morph.Lexicon
	Len() int
	Classes() int
	Fingerprint() string
}

// Server handles msgpack IPC for solve requests
type Server struct {
	lex        Lexicon
	searcher   *morph.Searcher
	options    []morph.Option
	heuristic  string
	earlyBreak bool
	maxWordLen int
	cache      *cache.Cache
	log        *log.Logger

	enc      *msgpack.Encoder
	requests int
}

// New creates a server for lex using the costs and search settings of cfg.
// c may be nil to disable caching.
func New(lex Lexicon, cfg *config.Config, c *cache.Cache) (*Server, error) {
	costs, err := cfg.Costs.CostModel()
	if err != nil {
		return nil, err
	}
	options, err := cfg.SearchOptions()
	if err != nil {
		return nil, err
	}
	heuristic := cfg.Search.Heuristic
	if heuristic == "" {
		heuristic = morph.HeuristicAdmissible
	}
	return &Server{
		lex:        lex,
		searcher:   morph.NewSearcher(lex, costs, options...),
		options:    options,
		heuristic:  heuristic,
		earlyBreak: cfg.Search.EarlyBreak,
		maxWordLen: cfg.Server.MaxWordLength,
		cache:      c,
		log:        logger.New("server"),
	}, nil
}

// Start serves stdin/stdout until EOF.
func (s *Server) Start() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads requests from r until EOF, writing one response per request
// to w. A frame that is not valid msgpack ends the stream with an error.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	s.log.Debug("Starting server.")
	dec := msgpack.NewDecoder(r)
	s.enc = msgpack.NewEncoder(w)

	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		raw, err := dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Client disconnected (EOF)")
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			s.sendError("", "Invalid msgpack stream", CodeBadRequest)
			return err
		}
		s.handleRequest(raw)
	}
}

// handleRequest processes one msgpack encoded message
func (s *Server) handleRequest(raw []byte) {
	s.requests++

	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.log.Debugf("Unmarshaling request: %v", err)
		s.sendError("", "Invalid request", CodeBadRequest)
		return
	}

	switch req.Action {
	case "", ActionSolve:
		s.handleSolve(req)
	case ActionHealth:
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
	case ActionInfo:
		s.handleInfo(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), CodeBadRequest)
	}
}

func (s *Server) handleSolve(req Request) {
	start := utils.NormalizeWord(req.Start)
	end := utils.NormalizeWord(req.End)

	for _, w := range [...]string{start, end} {
		if code, msg := s.checkWord(w); code != 0 {
			s.log.Debug("Rejected word", "id", req.ID, "word", w, "reason", msg)
			s.sendError(req.ID, msg, code)
			return
		}
	}

	searcher := s.searcher
	if req.Costs != nil {
		if err := req.Costs.Validate(); err != nil {
			s.sendError(req.ID, err.Error(), CodeBadRequest)
			return
		}
		searcher = morph.NewSearcher(s.lex, *req.Costs, s.options...)
	}

	t0 := time.Now()
	key := cache.Key(s.lex.Fingerprint(), searcher.Costs(), s.mode(), start, end)
	if entry, ok := s.lookup(key); ok {
		s.sendResponse(SolveResponse{
			ID:        req.ID,
			Found:     entry.Found,
			Cost:      entry.Value(),
			Expanded:  entry.Expanded,
			TimeTaken: time.Since(t0).Microseconds(),
			CacheHit:  true,
		})
		return
	}

	res := searcher.Search(start, end)
	elapsed := time.Since(t0)
	s.log.Debug("Solved", "id", req.ID, "start", start, "end", end, "cost", res.Value(),
		"expanded", res.Stats.Expanded, "took", elapsed)
	s.store(key, cache.FromResult(res))

	s.sendResponse(SolveResponse{
		ID:        req.ID,
		Found:     res.Found,
		Cost:      res.Value(),
		Expanded:  res.Stats.Expanded,
		TimeTaken: elapsed.Microseconds(),
	})
}

// checkWord returns a non-zero code and a message for unusable words.
func (s *Server) checkWord(w string) (int, string) {
	switch {
	case w == "":
		return CodeBadRequest, "Missing word"
	case len(w) > s.maxWordLen:
		return CodeBadRequest, fmt.Sprintf("Word exceeds maximum length of %d characters", s.maxWordLen)
	case !utils.IsValidWord(w):
		return CodeBadRequest, fmt.Sprintf("Word %q must contain letters a-z only", w)
	}
	if err := problem.CheckWord(s.lex, w); err != nil {
		if errors.Is(err, problem.ErrNotInDictionary) {
			return CodeNotFound, err.Error()
		}
		return CodeBadRequest, err.Error()
	}
	return 0, ""
}

// mode names the search settings that can change an answer.
func (s *Server) mode() string {
	if s.earlyBreak {
		return s.heuristic
	}
	return s.heuristic + "/full"
}

func (s *Server) lookup(key []byte) (cache.Entry, bool) {
	if s.cache == nil {
		return cache.Entry{}, false
	}
	entry, ok, err := s.cache.Get(key)
	if err != nil {
		s.log.Warnf("Cache lookup failed: %v", err)
		return cache.Entry{}, false
	}
	return entry, ok
}

func (s *Server) store(key []byte, entry cache.Entry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(key, entry); err != nil {
		s.log.Warnf("Cache store failed: %v", err)
	}
}

func (s *Server) handleInfo(req Request) {
	resp := InfoResponse{
		ID:         req.ID,
		Status:     "ok",
		Words:      s.lex.Len(),
		Classes:    s.lex.Classes(),
		Costs:      s.searcher.Costs(),
		Heuristic:  s.heuristic,
		EarlyBreak: s.earlyBreak,
		Requests:   s.requests,
	}
	if s.cache != nil {
		if n, err := s.cache.Len(); err == nil {
			resp.Cached = n
		}
	}
	s.sendResponse(resp)
}

// sendResponse encodes response as one msgpack value on the output stream
func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
