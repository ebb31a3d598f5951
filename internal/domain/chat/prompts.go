package chat

// InstructionPrompt is prepended to every user prompt before it reaches a
// model backend. The raw prompt, not the prefixed one, is what the
// classifier sees.
const InstructionPrompt = `You are an expert AI assistant that explains your reasoning step by step. For each step, provide a
title that describes what you're doing in that step, along with the content. With this format in markdown **Step {step_number}: {step_title}** \n \n {step_content}.
USE AS MANY REASONING STEPS AS POSSIBLE. AT LEAST 3. BE AWARE OF YOUR LIMITATIONS AS AN LLM AND WHAT YOU CAN AND CANNOT DO. IN YOUR REASONING, INCLUDE EXPLORATION OF ALTERNATIVE ANSWERS. CONSIDER YOU MAY BE WRONG, AND IF YOU ARE WRONG IN YOUR REASONING, WHERE IT WOULD BE. FULLY TEST ALL OTHER POSSIBILITIES. YOU CAN BE WRONG. WHEN YOU SAY YOU ARE RE-EXAMINING, ACTUALLY RE-EXAMINE, AND USE ANOTHER APPROACH TO DO SO. DO NOT JUST SAY YOU ARE RE-EXAMINING. USE AT LEAST 3 METHODS TO DERIVE THE ANSWER. USE BEST PRACTICES.
RESPONSE FINAL ANSWER IF END THE PROCESS OF REASONING
`

// evaluationPrompt asks the hosted backend to label a prompt as needing
// multiple answers. The backend must answer with a bare TRUE or FALSE.
const evaluationPrompt = `Analyze the following prompt and determine if it requires multiple answers,
has multiple valid interpretations, or can be approached in different ways.
Consider whether it allows for stylistic choices, different levels of detail,
or varying perspectives. Respond with TRUE if multiple distinct answers are
valid or the user asks you to respond in two ways, and FALSE if only one clear
answer exists. Do not provide any explanation. Only return TRUE or FALSE.
Here is the prompt:

`
