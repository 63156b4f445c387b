package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/dyike/widgetchat/config"
	"github.com/dyike/widgetchat/internal/models"
)

// PromptWidgetConfig walks the user through a widget configuration.
// defaults (typically the server default for the type) pre-fill each answer.
func PromptWidgetConfig(defaults *models.WidgetConfig) (models.WidgetConfig, error) {
	cfg := models.WidgetConfig{}
	if defaults != nil {
		cfg = *defaults
	}

	size, err := promptSize(cfg.Size)
	if err != nil {
		return models.WidgetConfig{}, err
	}
	cfg.Size = size

	theme, err := promptTheme(cfg.Theme)
	if err != nil {
		return models.WidgetConfig{}, err
	}
	cfg.Theme = theme

	interval, err := promptRefreshInterval(cfg.RefreshInterval)
	if err != nil {
		return models.WidgetConfig{}, err
	}
	cfg.RefreshInterval = interval

	return cfg, nil
}

// promptSize asks for the widget card size
func promptSize(current string) (string, error) {
	options := []string{models.SizeSmall, models.SizeMedium, models.SizeLarge}
	if current == "" {
		current = models.SizeMedium
	}

	var size string
	prompt := &survey.Select{
		Message: "Widget size:",
		Options: options,
		Default: current,
		Help:    "How much space the widget card occupies in the thread",
	}
	if err := survey.AskOne(prompt, &size); err != nil {
		return "", err
	}
	return size, nil
}

// promptTheme asks for the widget theme
func promptTheme(current string) (string, error) {
	options := []string{models.ThemeLight, models.ThemeDark, models.ThemeAuto}
	if current == "" {
		current = models.ThemeAuto
	}

	var theme string
	prompt := &survey.Select{
		Message: "Widget theme:",
		Options: options,
		Default: current,
		Help:    "auto follows the client theme",
	}
	if err := survey.AskOne(prompt, &theme); err != nil {
		return "", err
	}
	return theme, nil
}

// promptRefreshInterval asks for the server refresh interval in seconds
func promptRefreshInterval(current int) (int, error) {
	if current <= 0 {
		current = 300
	}

	var answer string
	prompt := &survey.Input{
		Message: "Refresh interval in seconds:",
		Default: strconv.Itoa(current),
		Help:    "How often the server recomputes this widget's data (0 disables)",
	}

	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return nil
		}
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("enter a whole number of seconds")
		}
		if n < 0 {
			return fmt.Errorf("interval cannot be negative")
		}
		if n > 86400 {
			return fmt.Errorf("interval cannot exceed one day")
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current, nil
	}
	return strconv.Atoi(answer)
}

// PromptClientConfig edits the client settings in place, starting from the
// current values. The result still has to pass Config.Validate.
func PromptClientConfig(current config.Config) (config.Config, error) {
	cfg := current

	questions := []*survey.Question{
		{
			Name: "serverURL",
			Prompt: &survey.Input{
				Message: "Backend server URL:",
				Default: cfg.ServerURL,
			},
			Validate: func(val interface{}) error {
				str := strings.TrimSpace(val.(string))
				if !strings.HasPrefix(str, "http://") && !strings.HasPrefix(str, "https://") {
					return fmt.Errorf("must be an http(s) URL")
				}
				return nil
			},
		},
		{
			Name: "userID",
			Prompt: &survey.Input{
				Message: "User id:",
				Default: cfg.UserID,
			},
			Validate: survey.Required,
		},
		{
			Name: "theme",
			Prompt: &survey.Select{
				Message: "Theme:",
				Options: []string{"light", "dark", "auto"},
				Default: cfg.Theme,
			},
		},
	}

	answers := struct {
		ServerURL string
		UserID    string
		Theme     string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return config.Config{}, err
	}

	cfg.ServerURL = strings.TrimSpace(answers.ServerURL)
	cfg.UserID = strings.TrimSpace(answers.UserID)
	cfg.Theme = answers.Theme

	timeout, err := promptTimeout(cfg.RequestTimeout)
	if err != nil {
		return config.Config{}, err
	}
	cfg.RequestTimeout = timeout

	debug := cfg.Debug
	if err := survey.AskOne(&survey.Confirm{Message: "Enable debug logging?", Default: cfg.Debug}, &debug); err != nil {
		return config.Config{}, err
	}
	cfg.Debug = debug

	return cfg, nil
}

func promptTimeout(current int) (int, error) {
	var answer string
	prompt := &survey.Input{
		Message: "Request timeout in seconds:",
		Default: strconv.Itoa(current),
	}
	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return nil
		}
		n, err := strconv.Atoi(str)
		if err != nil || n <= 0 {
			return fmt.Errorf("enter a positive number of seconds")
		}
		return nil
	}))
	if err != nil {
		return 0, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current, nil
	}
	return strconv.Atoi(answer)
}
