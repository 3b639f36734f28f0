package perk

// IsPrime reports whether n is a prime number
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// IsPerfect reports whether n equals the sum of its proper divisors
func IsPerfect(n int) bool {
	if n < 2 {
		return false
	}
	sum := 1
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			sum += i
			if pair := n / i; pair != i {
				sum += pair
			}
		}
	}
	return sum == n
}
