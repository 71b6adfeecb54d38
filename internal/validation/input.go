package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 10000
	maxMessageLength     = 5000
	maxReasonLength      = 2000
)

// ValidateEmail проверяет корректность email адреса.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email обязателен")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("некорректный email адрес")
	}
	return nil
}

// ValidateTitle проверяет длину названия.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("название обязательно")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("название не может быть длиннее %d символов", maxTitleLength)
	}
	return nil
}

// ValidateDescription проверяет длину описания.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return fmt.Errorf("описание не может быть длиннее %d символов", maxDescriptionLength)
	}
	return nil
}

// ValidateMessageBody проверяет текст сообщения спора.
func ValidateMessageBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("текст сообщения обязателен")
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		return fmt.Errorf("сообщение не может быть длиннее %d символов", maxMessageLength)
	}
	return nil
}

// ValidateReason проверяет причину спора или отклонения.
func ValidateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("причина обязательна")
	}
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return fmt.Errorf("причина не может быть длиннее %d символов", maxReasonLength)
	}
	return nil
}
