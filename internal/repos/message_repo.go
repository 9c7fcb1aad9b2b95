package repos

import "ecoloop/internal/domain"

// MessageRepo hands out fresh copies of the mock inbox so every session can
// mutate its own.
type MessageRepo struct{}

func NewMessageRepo() *MessageRepo { return &MessageRepo{} }

func (r *MessageRepo) Conversations() []domain.Conversation {
	return []domain.Conversation{
		{ID: 1, Name: "TechRecycle Pro", Role: domain.RoleSeller, LastMessage: "The laptops are in excellent condition", Time: "2m ago", Unread: 2, Online: true, Avatar: "T"},
		{ID: 2, Name: "Green Electronics", Role: domain.RoleSeller, LastMessage: "I can deliver by tomorrow", Time: "1h ago", Online: true, Avatar: "G"},
		{ID: 3, Name: "EcoTech Buyers", Role: domain.RoleBuyer, LastMessage: "What's your best price?", Time: "3h ago", Unread: 1, Avatar: "E"},
		{ID: 4, Name: "RecycleHub Mumbai", Role: domain.RoleSeller, LastMessage: "Thanks for your order!", Time: "1d ago", Avatar: "R"},
	}
}

func (r *MessageRepo) Messages() map[int][]domain.Message {
	return map[int][]domain.Message{
		1: {
			{ID: 1, Sender: "them", Text: "Hi! I have 50 Dell laptops available", Time: "10:30 AM", Avatar: "T"},
			{ID: 2, Sender: "me", Text: "Great! What's the condition?", Time: "10:32 AM"},
			{ID: 3, Sender: "them", Text: "The laptops are in excellent condition. All screens working, minor scratches only", Time: "10:35 AM", Avatar: "T"},
			{ID: 4, Sender: "me", Text: "Can you send some photos?", Time: "10:36 AM"},
			{ID: 5, Sender: "them", Text: "Sure, I'll send them right away", Time: "10:38 AM", Avatar: "T"},
		},
		2: {
			{ID: 1, Sender: "them", Text: "Hello! Are you interested in server parts?", Time: "Yesterday", Avatar: "G"},
			{ID: 2, Sender: "me", Text: "Yes, what do you have?", Time: "Yesterday"},
			{ID: 3, Sender: "them", Text: "I can deliver by tomorrow", Time: "1h ago", Avatar: "G"},
		},
		3: {
			{ID: 1, Sender: "them", Text: "What's your best price?", Time: "3h ago", Avatar: "E"},
			{ID: 2, Sender: "me", Text: "I can offer ₹1,80,000 for the lot", Time: "2h ago"},
		},
	}
}
