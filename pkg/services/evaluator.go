package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"PredicaAI/pkg/cache"
	"PredicaAI/pkg/config"
	"PredicaAI/pkg/prompts"
	"PredicaAI/pkg/transcripts"
)

// ChatCompleter is the single capability the evaluator needs from the
// model provider.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, prompt string) (string, error)
}

// Placeholder token a calibration prompt may carry; the section text is
// substituted there, or appended when the token is absent.
const placeholder = "[transcripción]"

// Fallback texts for the soft-failure evaluation paths. Transcription and
// suggestion generation do NOT soft-fail; only evaluations do.
const (
	FallbackSeccion = "Error en la evaluación de la transcripción."
	FallbackHilo    = "Error en la evaluación de la prédica completa."
)

// Evaluator builds prompts from the calibration store and the section
// state, and asks the model for evaluation text.
type Evaluator struct {
	ai      ChatCompleter
	prompts *prompts.Store
	state   *transcripts.Store
	cache   *cache.Cache
	ttl     time.Duration
}

func NewEvaluator(ai ChatCompleter, ps *prompts.Store, state *transcripts.Store) *Evaluator {
	return &Evaluator{
		ai:      ai,
		prompts: ps,
		state:   state,
		cache:   cache.Default(),
		ttl:     time.Duration(config.EvalCacheTTLSeconds) * time.Second,
	}
}

// BuildSectionPrompt combines the section's calibration prompt with the
// text under evaluation.
func (e *Evaluator) BuildSectionPrompt(section, text string) string {
	tpl := e.prompts.Get(section)
	if strings.Contains(tpl, placeholder) {
		return strings.Replace(tpl, placeholder, text, 1)
	}
	return tpl + "\n\nTexto a evaluar:\n" + text
}

// EvaluateSection returns the model's evaluation of a section's text.
// Provider failures never propagate: the caller gets FallbackSeccion and
// the request still succeeds. Identical evaluations within the cache TTL
// are served from memory; the key covers the built prompt, so a
// calibration update invalidates cached entries for that section.
func (e *Evaluator) EvaluateSection(ctx context.Context, section, text string) string {
	prompt := e.BuildSectionPrompt(section, text)
	key := cache.EvalKey(section, prompt)
	if cached, ok := e.cache.GetEvaluation(key); ok {
		log.Printf("[evaluator] cache hit for section %s", section)
		return cached
	}

	result, err := e.ai.ChatCompletion(ctx, prompt)
	if err != nil {
		log.Printf("[evaluator] section %s evaluation failed: %v", section, err)
		return FallbackSeccion
	}
	e.cache.SetEvaluation(key, result, e.ttl)
	return result
}

// BuildHiloPrompt assembles the whole-outline coherence prompt from a
// snapshot of the section state.
func (e *Evaluator) BuildHiloPrompt(snapshot map[string]string) string {
	completa := fmt.Sprintf(`
📌 **Título:** %s
📌 **Introducción:** %s
📌 **Costura:** %s
📌 **Problemática:** %s
📌 **Conector:** %s
📌 **Desarrollo:** %s
📌 **Conclusión:** %s
📌 **Ministración:** %s
`,
		snapshot["titulo"],
		snapshot["introduccion"],
		snapshot["costura"],
		snapshot["problematica"],
		snapshot["conector"],
		snapshot["desarrollo"],
		snapshot["conclusion"],
		snapshot["ministracion"],
	)

	return fmt.Sprintf(`
Eres un experto en análisis de discursos. Evalúa la coherencia de esta prédica:

1. ¿Las secciones se conectan lógicamente?
2. ¿El mensaje central es claro y progresivo?
3. ¿Se refuerza la enseñanza en la conclusión?
4. ¿Hay equilibrio entre profundidad, aplicación práctica y claridad?

Transcripción completa:
"%s"

Proporciona una evaluación general con recomendaciones de mejora.
`, completa)
}

// EvaluateHilo evaluates the coherence of the full outline. Same
// soft-failure policy as EvaluateSection.
func (e *Evaluator) EvaluateHilo(ctx context.Context) string {
	prompt := e.BuildHiloPrompt(e.state.Snapshot())
	result, err := e.ai.ChatCompletion(ctx, prompt)
	if err != nil {
		log.Printf("[evaluator] hilo evaluation failed: %v", err)
		return FallbackHilo
	}
	return result
}

// BuildSuggestionPrompt asks the model to rewrite a transcription applying
// the evaluation's suggestions, under the section's calibration prompt.
func (e *Evaluator) BuildSuggestionPrompt(seccion, transcripcion, evaluacion string) string {
	inicial := e.prompts.Get(seccion)
	return fmt.Sprintf(`
Eres un asistente de escritura experto.
Considera el siguiente prompt inicial para la sección "%s":
"%s"

A continuación, tienes la transcripción original:
"%s"

Y estas son las sugerencias para mejorarla:
"%s"

Tu tarea es producir una nueva versión de la transcripción que incorpore las sugerencias de manera coherente y clara, siguiendo las indicaciones del prompt inicial.
`, seccion, inicial, transcripcion, evaluacion)
}

// ApplySuggestions produces the rewritten transcription. Hard failure: the
// handler maps the error to a 500.
func (e *Evaluator) ApplySuggestions(ctx context.Context, seccion, transcripcion, evaluacion string) (string, error) {
	prompt := e.BuildSuggestionPrompt(seccion, transcripcion, evaluacion)
	return e.ai.ChatCompletion(ctx, prompt)
}
