package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptCompatible_CommonIsCompatibleWithAnything(t *testing.T) {
	assert.True(t, scriptCompatible(scriptCommon, "Latin"))
	assert.True(t, scriptCompatible("Latin", scriptCommon))
}

func TestScriptCompatible_DistinctSpecificScriptsAreNot(t *testing.T) {
	assert.False(t, scriptCompatible("Latin", "Han"))
}

func TestRuneScript_ASCIILetterIsLatin(t *testing.T) {
	assert.Equal(t, "Latin", runeScript('a'))
}

func TestRuneScript_DigitIsCommon(t *testing.T) {
	assert.Equal(t, scriptCommon, runeScript('5'))
}

func TestIsSpecificScript(t *testing.T) {
	assert.True(t, isSpecificScript("Latin"))
	assert.False(t, isSpecificScript(scriptCommon))
	assert.False(t, isSpecificScript(scriptInherited))
}
