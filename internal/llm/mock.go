package llm

import "context"

// MockClient lets tests run the pipeline without a real provider.
type MockClient struct {
	Response string
	Err      error
	Calls    int
}

func (m *MockClient) Name() string { return "mock" }

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.Response, m.Err
}
