// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

// The stack is unbounded, so only the lower bound of every operation is
// tracked. 栈无上限，因此只记录每条指令所需的最小栈深度。

func minSwapStack(n int) int {
	return minStack(n, n)
}

func minDupStack(n int) int {
	return minStack(n, n+1)
}

func minStack(pops, push int) int {
	return pops
}
