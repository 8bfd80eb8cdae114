package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JLJones1696/Vehicle-Manager/pkg/types"
)

func TestClassifyExit(t *testing.T) {
	assert.Equal(t, exitUserError, classifyExit(fmt.Errorf("%w: bad date", types.ErrValidation)))
	assert.Equal(t, exitUserError, classifyExit(fmt.Errorf("%w: vehicle", types.ErrNotFound)))
	assert.Equal(t, exitSysError, classifyExit(errors.New("disk on fire")))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
		{"", false}, // closed stdin
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := confirm(bufio.NewReader(strings.NewReader(tt.input)), &out, "Proceed?")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Proceed?")
	}
}

func TestConfirmTwicePipedInput(t *testing.T) {
	// Both answers arrive on one pipe; the shared reader hands each prompt
	// its own line instead of swallowing the second in the first read.
	in := bufio.NewReader(strings.NewReader("y\ny\n"))
	var out bytes.Buffer

	assert.True(t, confirm(in, &out, "First?"))
	assert.True(t, confirm(in, &out, "Second?"))

	in = bufio.NewReader(strings.NewReader("y\nn\n"))
	assert.True(t, confirm(in, &out, "First?"))
	assert.False(t, confirm(in, &out, "Second?"))
}

func TestPrintVehicleTable(t *testing.T) {
	var out bytes.Buffer
	printVehicleTable(&out, []types.Vehicle{
		{VehicleID: "TRUCK-1", Status: types.StatusActive, User: "Alex", Purpose: "Deliveries",
			CheckedOut: "2024-04-28", EstimatedCheckIn: "2024-05-10"},
	})
	assert.Contains(t, out.String(), "TRUCK-1")
	assert.Contains(t, out.String(), "ACTIVE")
}
