package config_test

import (
	"testing"

	"github.com/agnusemu/amiga500/config"
	"github.com/agnusemu/amiga500/errors"
)

func TestDefaultConfigValid(t *testing.T) {
	c := config.Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestUnsupportedChipRAM(t *testing.T) {
	c := config.Default()
	c.ChipRAM = config.ChipRAMSize(123)
	err := c.Validate()
	if !errors.Is(err, errors.ConfigurationInvalid) {
		t.Fatalf("expected ConfigurationInvalid, got %v", err)
	}
}

func TestFastRAMStepValidation(t *testing.T) {
	c := config.Default()
	c.FastRAM = 100 * 1024 // not a multiple of 64KiB
	if err := c.Validate(); !errors.Is(err, errors.ConfigurationInvalid) {
		t.Fatalf("expected ConfigurationInvalid for misaligned fast RAM, got %v", err)
	}

	c.FastRAM = 64 * 1024
	if err := c.Validate(); err != nil {
		t.Fatalf("expected 64KiB fast RAM to validate, got %v", err)
	}
}

func TestKickstartSizeValidation(t *testing.T) {
	c := config.Default()
	c.KickstartROM = make([]byte, 100)
	if err := c.Validate(); !errors.Is(err, errors.ConfigurationInvalid) {
		t.Fatalf("expected ConfigurationInvalid for bad kickstart size, got %v", err)
	}
}

func TestLiveBoolHooks(t *testing.T) {
	live := config.NewLive()

	var posted bool
	live.Warp.SetHookPost(func(v bool) { posted = v })

	if err := live.Warp.Set(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !live.Warp.Get() {
		t.Fatal("expected warp to be true")
	}
	if !posted {
		t.Fatal("expected post-hook to have run with true")
	}
}

func TestLiveBoolPreHookCanReject(t *testing.T) {
	live := config.NewLive()
	live.Sprites.SetHookPre(func(bool) error {
		return errors.New(errors.ConfigurationInvalid, "sprites locked for this test")
	})

	err := live.Sprites.Set(false)
	if !errors.Is(err, errors.ConfigurationInvalid) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if !live.Sprites.Get() {
		t.Fatal("expected value to remain unchanged after rejected set")
	}
}
