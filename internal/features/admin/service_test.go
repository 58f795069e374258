package admin

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/argon2"
)

// encodeArgon2id собирает хеш в том же формате, что scripts/generate_hash.go.
func encodeArgon2id(password string, salt []byte) string {
	hash := argon2.IDKey([]byte(password), salt, 3, 65536, 2, 32)
	return fmt.Sprintf("$argon2id$v=19$m=65536,t=3,p=2$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func TestVerifyArgon2id(t *testing.T) {
	salt := []byte("0123456789abcdef")
	encoded := encodeArgon2id("secret-password", salt)

	if !verifyArgon2id("secret-password", encoded) {
		t.Error("правильный пароль не прошёл проверку")
	}
	if verifyArgon2id("wrong-password", encoded) {
		t.Error("неправильный пароль прошёл проверку")
	}
	if verifyArgon2id("secret-password", "не-хеш-вообще") {
		t.Error("мусор вместо хеша прошёл проверку")
	}
	if verifyArgon2id("secret-password", "") {
		t.Error("пустой хеш прошёл проверку")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	a, b := generateSecureToken(), generateSecureToken()
	if a == b {
		t.Error("два токена подряд совпали")
	}
	if len(a) < 40 {
		t.Errorf("токен подозрительно короткий: %d символов", len(a))
	}
}

func TestStateMachine(t *testing.T) {
	s := &Service{states: make(map[int64]*State)}

	if s.GetState(1) != nil {
		t.Error("у нового пользователя не должно быть состояния")
	}

	s.SetState(1, StateAwaitingPassword, nil)
	st := s.GetState(1)
	if st == nil || st.State != StateAwaitingPassword {
		t.Fatal("состояние не сохранилось")
	}

	s.SetState(1, StateGiveMoneyAmount, int64(42))
	st = s.GetState(1)
	if st.State != StateGiveMoneyAmount {
		t.Error("состояние не перезаписалось")
	}
	if got, ok := st.Data.(int64); !ok || got != 42 {
		t.Errorf("данные состояния потерялись: %v", st.Data)
	}

	s.ClearState(1)
	if s.GetState(1) != nil {
		t.Error("состояние не сбросилось")
	}
}

func TestStateExpiry(t *testing.T) {
	s := &Service{states: make(map[int64]*State)}

	s.states[7] = &State{
		State:     StateGiveMoneyAmount,
		Data:      int64(42),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	if s.GetState(7) != nil {
		t.Error("истёкшее состояние должно читаться как nil")
	}
}

func TestStateTargetID(t *testing.T) {
	var none *State
	if _, ok := none.TargetID(); ok {
		t.Error("nil-состояние не должно давать цель")
	}

	st := &State{State: StateGiveMoneyAmount, Data: "не-число"}
	if _, ok := st.TargetID(); ok {
		t.Error("чужой тип данных не должен давать цель")
	}

	st = &State{State: StateVIPDays, Data: int64(99)}
	id, ok := st.TargetID()
	if !ok || id != 99 {
		t.Errorf("цель потерялась: id=%d ok=%v", id, ok)
	}
}
