package usecase

// SetIDGenerator replaces the random id source, for collision tests.
func (u *AuthUsecase) SetIDGenerator(f func() string) { u.newID = f }

func (u *LinkUsecase) SetIDGenerator(f func() string) { u.newID = f }
