package emulator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/raywall/fast-sns/pkg/config"
	"github.com/raywall/fast-sns/pkg/metrics"
	"github.com/raywall/fast-sns/tools/emulator/delivery"
	"github.com/raywall/fast-sns/tools/emulator/store"
	"github.com/rs/zerolog"
)

type actionFunc func(ctx context.Context, p params) (any, error)

// Server é o emulador HTTP do SNS.
type Server struct {
	cfg       config.EmulatorConf
	state     *state
	deliverer delivery.Deliverer
	faults    *Faults
	log       zerolog.Logger
	recorder  *metrics.CallRecorder
	metrics   http.Handler
	baseURL   string

	// mu serializa as ações; entregas rodam fora dele.
	mu         sync.Mutex
	deliveries sync.WaitGroup
	dedup      map[string]dedupEntry
	actions    map[string]actionFunc
}

// Option configura o Server.
type Option func(*Server)

// WithLogger define o logger (default: zerolog.Nop).
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l.With().Str("component", "sns-emulator").Logger() }
}

// WithMetrics registra o provider de métricas e, opcionalmente, o handler exposto em GET /metrics.
func WithMetrics(p metrics.Provider, handler http.Handler) Option {
	return func(s *Server) {
		s.recorder = metrics.NewCallRecorder(p, "region:"+s.cfg.Region)
		s.metrics = handler
	}
}

// WithBaseURL define a URL pública do emulador, usada em SubscribeURL e UnsubscribeURL.
func WithBaseURL(u string) Option {
	return func(s *Server) { s.baseURL = u }
}

// NewServer cria o emulador. Deliverer nil equivale a delivery.Noop e Faults nil desliga a injeção de falhas.
func NewServer(cfg config.EmulatorConf, st store.Store, d delivery.Deliverer, faults *Faults, opts ...Option) *Server {
	if d == nil {
		d = delivery.Noop{}
	}
	s := &Server{
		cfg:       cfg,
		state:     &state{st: st},
		deliverer: d,
		faults:    faults,
		log:       zerolog.Nop(),
		baseURL:   fmt.Sprintf("http://localhost:%d", cfg.Port),
		dedup:     map[string]dedupEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.actions = s.routes()
	return s
}

// Handler devolve o roteador: Query em "/" (GET ou POST), GET /health e GET /metrics.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}
	r.HandleFunc("/", s.dispatch).Methods(http.MethodGet, http.MethodPost)
	return r
}

// Start serve na porta configurada até ctx terminar, então encerra e aguarda as entregas pendentes.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info().Int("port", s.cfg.Port).Str("region", s.cfg.Region).Msg("emulador SNS iniciado")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Wait()
	s.log.Info().Msg("emulador SNS encerrado")
	return err
}

// Wait bloqueia até todas as entregas em andamento terminarem.
func (s *Server) Wait() { s.deliveries.Wait() }

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	var action string
	outcome := metrics.OutcomeSuccess
	defer func() {
		_ = s.recorder.Emit(metrics.EmulatorCalls, 1, "action:"+action, "outcome:"+outcome)
		s.log.Debug().Str("action", action).Str("outcome", outcome).
			Dur("latency", time.Since(start)).Str("request_id", requestID).Msg("requisição processada")
	}()

	fail := func(e *apiError) {
		outcome = metrics.OutcomeServiceError
		s.log.Warn().Str("action", action).Str("code", e.Code).Str("message", e.Message).Msg("requisição rejeitada")
		if err := writeError(w, requestID, e); err != nil {
			s.log.Error().Err(err).Msg("falha ao escrever erro")
		}
	}

	if err := r.ParseForm(); err != nil {
		fail(&apiError{Status: http.StatusBadRequest, Code: "MalformedQueryString", Message: err.Error()})
		return
	}
	p := params(r.Form)
	action = p.get("Action")

	fn, ok := s.actions[action]
	if !ok {
		if action == "" {
			fail(&apiError{Status: http.StatusBadRequest, Code: "MissingAction", Message: "Action is required"})
			return
		}
		fail(&apiError{Status: http.StatusBadRequest, Code: "InvalidAction", Message: "Unknown action " + action})
		return
	}

	injected, err := s.faults.check(action, p)
	if err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("falha ao avaliar regra de falha")
	}
	if injected != nil {
		fail(injected)
		return
	}

	result, err := s.run(r.Context(), action, fn, p)

	if err != nil {
		var apiErr *apiError
		if !errors.As(err, &apiErr) {
			s.log.Error().Err(err).Str("action", action).Msg("erro interno")
			apiErr = internalError(err)
		}
		fail(apiErr)
		return
	}

	if err := writeResult(w, action, requestID, result); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("falha ao escrever resposta")
	}
}

// run executa a ação com o estado bloqueado. Um panic na ação vira InternalError
// e não deixa o lock preso.
func (s *Server) run(ctx context.Context, action string, fn actionFunc, p params) (result any, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, fmt.Errorf("panic em %s: %v", action, rec)
		}
	}()
	return fn(ctx, p)
}

// deliver entrega em background, sem depender do ciclo de vida da requisição.
func (s *Server) deliver(ctx context.Context, target delivery.Target, n delivery.Notification) {
	s.deliveries.Add(1)
	go func() {
		defer s.deliveries.Done()
		if err := s.deliverer.Deliver(context.WithoutCancel(ctx), target, n); err != nil {
			s.log.Error().Err(err).
				Str("subscription_arn", target.SubscriptionArn).
				Str("protocol", target.Protocol).
				Msg("falha na entrega")
			return
		}
		s.log.Debug().Str("subscription_arn", target.SubscriptionArn).Str("type", n.Type).Msg("mensagem entregue")
	}()
}

func (s *Server) routes() map[string]actionFunc {
	return map[string]actionFunc{
		"AddPermission":                      s.addPermission,
		"CheckIfPhoneNumberIsOptedOut":       s.checkIfPhoneNumberIsOptedOut,
		"ConfirmSubscription":                s.confirmSubscription,
		"CreatePlatformApplication":          s.createPlatformApplication,
		"CreatePlatformEndpoint":             s.createPlatformEndpoint,
		"CreateTopic":                        s.createTopic,
		"DeleteEndpoint":                     s.deleteEndpoint,
		"DeletePlatformApplication":          s.deletePlatformApplication,
		"DeleteTopic":                        s.deleteTopic,
		"GetEndpointAttributes":              s.getEndpointAttributes,
		"GetPlatformApplicationAttributes":   s.getPlatformApplicationAttributes,
		"GetSMSAttributes":                   s.getSMSAttributes,
		"GetSubscriptionAttributes":          s.getSubscriptionAttributes,
		"GetTopicAttributes":                 s.getTopicAttributes,
		"ListEndpointsByPlatformApplication": s.listEndpointsByPlatformApplication,
		"ListPhoneNumbersOptedOut":           s.listPhoneNumbersOptedOut,
		"ListPlatformApplications":           s.listPlatformApplications,
		"ListSubscriptions":                  s.listSubscriptions,
		"ListSubscriptionsByTopic":           s.listSubscriptionsByTopic,
		"ListTopics":                         s.listTopics,
		"OptInPhoneNumber":                   s.optInPhoneNumber,
		"Publish":                            s.publish,
		"PublishBatch":                       s.publishBatch,
		"RemovePermission":                   s.removePermission,
		"SetEndpointAttributes":              s.setEndpointAttributes,
		"SetPlatformApplicationAttributes":   s.setPlatformApplicationAttributes,
		"SetSMSAttributes":                   s.setSMSAttributes,
		"SetSubscriptionAttributes":          s.setSubscriptionAttributes,
		"SetTopicAttributes":                 s.setTopicAttributes,
		"Subscribe":                          s.subscribe,
		"Unsubscribe":                        s.unsubscribe,
	}
}

func (s *Server) arn(resource string) string {
	return fmt.Sprintf("arn:aws:sns:%s:%s:%s", s.cfg.Region, s.cfg.AccountID, resource)
}
