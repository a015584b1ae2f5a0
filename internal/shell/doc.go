// Package shell provides shell integration for the prompt. It generates
// hook snippets (precmd_functions for Zsh, PROMPT_COMMAND for Bash,
// fish_prompt for Fish) that call promptline prompt before every prompt.
package shell
