package board

import (
	"errors"
	"fmt"

	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/internal/jira"
)

// Kind classifies a status message for styling.
type Kind string

const (
	KindInfo    Kind = ""
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Message is the status line shown above the tickets.
type Message struct {
	Kind  Kind
	Text  string
	Hints []string
}

// FallbackNotice explains that sample tickets are displayed.
const FallbackNotice = "ℹ️ Mostrando dados de exemplo (Configure as credenciais para ver dados reais)"

var (
	LoadingMessage  = Message{Text: "🔄 Carregando tickets do Jira..."}
	SavedMessage    = Message{Kind: KindSuccess, Text: "✅ Configuração salva com sucesso!"}
	FallbackMessage = Message{Kind: KindWarning, Text: FallbackNotice}
)

// LoadedMessage reports a successful load of count tickets.
func LoadedMessage(count int) Message {
	return Message{Kind: KindSuccess, Text: fmt.Sprintf("✅ %d tickets carregados com sucesso!", count)}
}

// ErrorMessage maps a configuration or retrieval error onto the message
// shown to the user.
func ErrorMessage(err error) Message {
	var (
		validationErr *config.ValidationError
		apiErr        *jira.APIError
		netErr        *jira.NetworkError
	)

	switch {
	case errors.As(err, &validationErr):
		return Message{Kind: KindWarning, Text: "⚠️ Preencha todos os campos obrigatórios"}
	case errors.Is(err, jira.ErrMissingCredentials):
		return Message{Kind: KindWarning, Text: "⚠️ Configure suas credenciais do Jira primeiro"}
	case errors.As(err, &apiErr):
		return Message{
			Kind: KindError,
			Text: fmt.Sprintf("❌ Erro ao carregar tickets: Erro na API: %d - %s", apiErr.StatusCode, apiErr.StatusText),
		}
	case errors.As(err, &netErr):
		return Message{
			Kind: KindError,
			Text: "❌ Erro de rede: não foi possível acessar o Jira. Para resolver, você pode:",
			Hints: []string{
				"1. Usar um proxy/backend com acesso ao Jira (recomendado)",
				"2. Ou liberar o host do Jira em firewall/extensões que bloqueiam a requisição (temporário)",
				"3. Ou usar a Jira Cloud REST API com token OAuth",
			},
		}
	default:
		return Message{Kind: KindError, Text: fmt.Sprintf("❌ Erro ao carregar tickets: %v", err)}
	}
}
